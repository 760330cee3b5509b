package config

import (
	"time"

	"taskflow/pkg/db/redis"
)

// RedisConfig представляет конфигурацию кэша пользователей в Redis.
type RedisConfig struct {
	Enabled         bool          `yaml:"enabled" env:"TASKFLOW_REDIS_ENABLED" env-default:"false"`
	Host            string        `yaml:"host" env:"TASKFLOW_REDIS_HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"TASKFLOW_REDIS_PORT" env-default:"6379"`
	Password        string        `yaml:"password" env:"TASKFLOW_REDIS_PASSWORD" env-default:""`
	DB              int           `yaml:"db" env:"TASKFLOW_REDIS_DB" env-default:"0"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" env:"TASKFLOW_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"TASKFLOW_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"TASKFLOW_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	PoolSize        int           `yaml:"pool_size" env:"TASKFLOW_REDIS_POOL_SIZE" env-default:"10"`
	MinIdle         int           `yaml:"min_idle" env:"TASKFLOW_REDIS_MIN_IDLE" env-default:"2"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"TASKFLOW_REDIS_IDLE_TIMEOUT" env-default:"5m"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"TASKFLOW_REDIS_MAX_CONN_LIFETIME" env-default:"1h"`
	UserTTL         time.Duration `yaml:"user_ttl" env:"TASKFLOW_REDIS_USER_TTL" env-default:"15m"`
}

// ClientConfig преобразует настройки в конфигурацию общего клиента Redis.
func (c *RedisConfig) ClientConfig() *redis.Config {
	return &redis.Config{
		Host:            c.Host,
		Port:            c.Port,
		Password:        c.Password,
		DB:              c.DB,
		PoolSize:        c.PoolSize,
		MinIdleConns:    c.MinIdle,
		ConnectTimeout:  c.ConnectTimeout,
		ReadTimeout:     c.ReadTimeout,
		WriteTimeout:    c.WriteTimeout,
		ConnMaxIdleTime: c.IdleTimeout,
		ConnMaxLifetime: c.MaxConnLifetime,
	}
}
