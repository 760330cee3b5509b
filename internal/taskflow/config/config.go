// Package config содержит конфигурацию сервиса taskflow.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	pkgconfig "taskflow/pkg/config"
	"taskflow/pkg/logger"
)

// ServiceName - имя сервиса в логах.
const ServiceName = "taskflow"

// EnvFile - переменная окружения с путем к .env файлу.
const EnvFile = "TASKFLOW_ENV_FILE"

// DefaultEnvFile - путь к .env файлу по умолчанию.
const DefaultEnvFile = "deploy/.env"

// Константы ошибок и сообщений для конфигурации.
const (
	LogLoadingConfig    = "loading taskflow service configuration"
	LogConfigLoaded     = "configuration loaded successfully"
	ErrFailedLoadConfig = "failed to load configuration"
)

// ErrMissingJWTSecret возвращается, если секрет подписи токенов не задан.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set and non-empty")

// Config представляет полную конфигурацию сервиса.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Postgres   PostgresConfig   `yaml:"postgres"`
	Migrations MigrationsConfig `yaml:"migrations"`
	JWT        JWTConfig        `yaml:"jwt"`
	Redis      RedisConfig      `yaml:"redis"`
	Logging    LoggingConfig    `yaml:"logging"`
	Shutdown   ShutdownConfig   `yaml:"shutdown"`
}

// Load загружает конфигурацию и проверяет обязательные параметры.
func Load(ctx context.Context) (*Config, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogLoadingConfig)

	envPath := os.Getenv(EnvFile)
	if envPath == "" {
		envPath = DefaultEnvFile
	}

	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, envPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		log.Error(ctx, ErrFailedLoadConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	log.Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.Bool("http_tls", cfg.HTTP.TLSEnabled()),
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Bool("postgres_url_set", cfg.Postgres.URL != ""),
		zap.String("migrations_dir", cfg.Migrations.Dir),
		zap.Duration("token_ttl", cfg.JWT.GetTokenTTL()),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout))

	return cfg, nil
}

// Validate проверяет значения, которые cleanenv не может проверить сам.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWT.SecretKey) == "" {
		return ErrMissingJWTSecret
	}
	return nil
}
