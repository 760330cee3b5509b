package config

import (
	"net"
	"strconv"
	"time"
)

// HTTPConfig представляет конфигурацию HTTP сервера.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"TASKFLOW_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"PORT" env-default:"5000"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"TASKFLOW_HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"TASKFLOW_HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"TASKFLOW_HTTP_IDLE_TIMEOUT" env-default:"60s"`
	BodyLimit    int           `yaml:"body_limit" env:"TASKFLOW_HTTP_BODY_LIMIT" env-default:"1048576"`
	TLSCertFile  string        `yaml:"tls_cert_file" env:"TASKFLOW_HTTP_TLS_CERT_FILE"`
	TLSKeyFile   string        `yaml:"tls_key_file" env:"TASKFLOW_HTTP_TLS_KEY_FILE"`
}

// GetAddress возвращает адрес HTTP сервера.
func (c *HTTPConfig) GetAddress() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// TLSEnabled сообщает, заданы ли сертификат и ключ.
func (c *HTTPConfig) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}
