// Package db подготавливает базу данных сервиса taskflow: миграции и пул соединений.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"taskflow/internal/taskflow/config"
	"taskflow/pkg/db/postgres"
	"taskflow/pkg/logger"
)

// Константы для сообщений логгера.
const (
	LogDBInitializing    = "initializing taskflow database"
	LogDBInitialized     = "taskflow database initialized successfully"
	LogMigrationStarting = "starting database migrations for taskflow service"
)

// Константы для сообщений об ошибках.
const (
	ErrDBMigrations = "failed to apply taskflow database migrations"
	ErrDBConnection = "failed to connect to taskflow database"
	ErrGetPath      = "failed to get path"
)

// Подменяются в тестах.
var (
	migrateDSN = postgres.MigrateDSN
	connect    = postgres.New
)

// DB представляет соединение с базой данных сервиса задач.
type DB struct {
	database *postgres.Database
}

// New применяет миграции из migrationsDir и открывает пул соединений.
func New(ctx context.Context, cfg *config.PostgresConfig, migrationsDir string) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Bool("url_set", cfg.URL != ""),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	migrationsPath, err := postgres.SourceURL(migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", ErrDBMigrations, ErrGetPath, err)
	}

	log.Info(ctx, LogMigrationStarting, zap.String("migrations_path", migrationsPath))
	if err := migrateDSN(ctx, cfg.GetConnectionURL(), migrationsPath); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	database, err := connect(ctx, cfg.GetConnectionURL(), cfg.PoolOptions())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized)

	return &DB{
		database: database,
	}, nil
}

// Close закрывает соединение с базой данных.
func (db *DB) Close(ctx context.Context) {
	db.database.Close(ctx)
}

// Pool возвращает пул соединений с базой данных.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping проверяет соединение с базой данных.
func (db *DB) Ping(ctx context.Context) error {
	return db.database.Ping(ctx)
}
