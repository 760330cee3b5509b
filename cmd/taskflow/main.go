package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"taskflow/internal/taskflow/adapters/cache"
	httpServer "taskflow/internal/taskflow/adapters/http"
	"taskflow/internal/taskflow/adapters/postgres"
	"taskflow/internal/taskflow/adapters/services"
	"taskflow/internal/taskflow/app"
	"taskflow/internal/taskflow/config"
	"taskflow/internal/taskflow/db"
	"taskflow/internal/taskflow/metrics"
	cachePorts "taskflow/internal/taskflow/ports/cache"
	"taskflow/internal/taskflow/resilience"
	pkgredis "taskflow/pkg/db/redis"
	"taskflow/pkg/logger"
	"taskflow/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "TASKFLOW_LOGGER_MODE"
	EnvLoggerLevel = "TASKFLOW_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDatabase         = "failed to initialize database"
	ErrInitMetrics          = "failed to initialize metrics"
	ErrCreateRedisClient    = "failed to create Redis client, user cache disabled"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "taskflow service started"
	LogServiceShutdownDone = "taskflow service shutdown complete"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingRedis        = "closing Redis connection"
	LogClosingDatabase     = "closing database connection"
	LogInitDatabase        = "initializing database"
	LogInitCache           = "initializing user cache"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"

	userCacheBreakerName = "user-cache"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitDatabase)
		database, err := db.New(ctx, &cfg.Postgres, cfg.Migrations.Dir)
		if err != nil {
			log.Error(ctx, ErrInitDatabase, zap.Error(err))
			exitCode = 1
			return
		}

		registry := prometheus.NewRegistry()
		registry.MustRegister(
			prometheus.NewGoCollector(),
			prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		)
		serviceMetrics, err := metrics.New(registry)
		if err != nil {
			log.Error(ctx, ErrInitMetrics, zap.Error(err))
			database.Close(ctx)
			exitCode = 1
			return
		}

		// Кэш необязателен: без Redis пользователи читаются из базы.
		var userCache cachePorts.UserCache
		if cfg.Redis.Enabled {
			log.Info(ctx, LogInitCache)
			client, err := pkgredis.NewClient(ctx, cfg.Redis.ClientConfig())
			if err != nil {
				log.Warn(ctx, ErrCreateRedisClient, zap.Error(err))
			} else {
				guard := resilience.NewServiceResilience(userCacheBreakerName, serviceMetrics)
				userCache = cache.NewRedisUserCache(client, cfg.Redis.UserTTL, guard, serviceMetrics)
			}
		}

		log.Info(ctx, LogInitServices)
		repoFactory := postgres.NewRepositoryFactory(database.Pool())
		serviceFactory := services.NewServiceFactory(cfg.JWT.SecretKey, cfg.JWT.GetTokenTTL(), cfg.JWT.BCryptCost)

		authUseCase := app.NewAuthUseCase(repoFactory.UserRepository(), serviceFactory.PasswordService(), serviceFactory.TokenService())
		userUseCase := app.NewUserUseCase(repoFactory.UserRepository(), serviceFactory.TokenService(), userCache)
		taskUseCase := app.NewTaskUseCase(repoFactory.TaskRepository())

		log.Info(ctx, LogInitHTTPServer)
		server := httpServer.NewApp(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
			IdleTimeout:  cfg.HTTP.IdleTimeout,
			BodyLimit:    cfg.HTTP.BodyLimit,
		})

		httpServer.SetupRouter(server, httpServer.Dependencies{
			Auth:     authUseCase,
			Users:    userUseCase,
			Tasks:    taskUseCase,
			DB:       database,
			Metrics:  serviceMetrics,
			Gatherer: registry,
		})

		listenConfig := fiber.ListenConfig{DisableStartupMessage: true}
		if cfg.HTTP.TLSEnabled() {
			listenConfig.CertFile = cfg.HTTP.TLSCertFile
			listenConfig.CertKeyFile = cfg.HTTP.TLSKeyFile
		}

		log.Info(ctx, LogStartingHTTP,
			zap.String("address", cfg.HTTP.GetAddress()),
			zap.Bool("tls", cfg.HTTP.TLSEnabled()))
		go func() {
			if err := server.Listen(cfg.HTTP.GetAddress(), listenConfig); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			// Остановка HTTP сервера.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return server.ShutdownWithContext(ctx)
			},
		)

		// Соединения закрываются после остановки сервера.
		if userCache != nil {
			log.Info(ctx, LogClosingRedis)
			if err := userCache.Close(); err != nil {
				log.Warn(ctx, LogClosingRedis, zap.Error(err))
			}
		}
		log.Info(ctx, LogClosingDatabase)
		database.Close(ctx)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
