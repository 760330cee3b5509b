package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"taskflow/pkg/db/postgres"
)

// PostgresConfig содержит настройки подключения к базе данных.
// URL (DATABASE_URL) имеет приоритет над отдельными полями.
type PostgresConfig struct {
	URL             string        `yaml:"url" env:"DATABASE_URL"`
	Host            string        `yaml:"host" env:"TASKFLOW_POSTGRES_HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"TASKFLOW_POSTGRES_PORT" env-default:"5432"`
	User            string        `yaml:"user" env:"TASKFLOW_POSTGRES_USER" env-default:"postgres"`
	Password        string        `yaml:"password" env:"TASKFLOW_POSTGRES_PASSWORD" env-default:"postgres"`
	Database        string        `yaml:"database" env:"TASKFLOW_POSTGRES_DB" env-default:"taskflow"`
	SSLMode         string        `yaml:"ssl_mode" env:"TASKFLOW_POSTGRES_SSLMODE" env-default:"disable"`
	MinConn         int           `yaml:"min_conn" env:"TASKFLOW_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn         int           `yaml:"max_conn" env:"TASKFLOW_POSTGRES_MAX_CONN" env-default:"10"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"TASKFLOW_POSTGRES_MAX_CONN_LIFETIME" env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"TASKFLOW_POSTGRES_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// GetConnectionURL возвращает URL подключения, используемый и пулом, и миграциями.
func (p *PostgresConfig) GetConnectionURL() string {
	if p.URL != "" {
		return p.URL
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
		Path:     "/" + p.Database,
		RawQuery: fmt.Sprintf("sslmode=%s", url.QueryEscape(p.SSLMode)),
	}
	return u.String()
}

// PoolOptions возвращает параметры пула соединений.
func (p *PostgresConfig) PoolOptions() postgres.PoolOptions {
	return postgres.PoolOptions{
		MinConns:        p.MinConn,
		MaxConns:        p.MaxConn,
		MaxConnLifetime: p.MaxConnLifetime,
		MaxConnIdleTime: p.MaxConnIdleTime,
	}
}

// MigrationsConfig задает каталог SQL миграций.
type MigrationsConfig struct {
	Dir string `yaml:"dir" env:"TASKFLOW_MIGRATIONS_DIR" env-default:"migrations/taskflow"`
}
