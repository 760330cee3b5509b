// Package redis предоставляет общий конструктор клиента Redis.
package redis

import (
	"net"
	"strconv"
	"time"
)

// Значения по умолчанию для подключения к Redis.
const (
	DefaultHost           = "localhost"
	DefaultPort           = 6379
	DefaultPoolSize       = 10
	DefaultConnectTimeout = 5 * time.Second
	DefaultIOTimeout      = 3 * time.Second
)

// Config содержит настройки подключения к Redis.
type Config struct {
	Host            string
	Port            int
	Password        string
	DB              int
	PoolSize        int
	MinIdleConns    int
	ConnectTimeout  time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

// DefaultConfig возвращает конфигурацию Redis по умолчанию.
func DefaultConfig() *Config {
	return &Config{
		Host:           DefaultHost,
		Port:           DefaultPort,
		PoolSize:       DefaultPoolSize,
		ConnectTimeout: DefaultConnectTimeout,
		ReadTimeout:    DefaultIOTimeout,
		WriteTimeout:   DefaultIOTimeout,
	}
}

// Address возвращает адрес в виде host:port.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
