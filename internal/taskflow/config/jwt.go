package config

import "time"

// DefaultTokenTTL - время жизни токена, если значение в конфигурации некорректно.
const DefaultTokenTTL = 24 * time.Hour

// JWTConfig содержит настройки токенов и хэширования паролей.
type JWTConfig struct {
	SecretKey  string `yaml:"secret_key" env:"JWT_SECRET" env-required:"true"`
	TokenTTL   string `yaml:"token_ttl" env:"TASKFLOW_JWT_TOKEN_TTL" env-default:"24h"`
	BCryptCost int    `yaml:"bcrypt_cost" env:"TASKFLOW_BCRYPT_COST" env-default:"10"`
}

// GetTokenTTL возвращает время жизни токена.
func (c *JWTConfig) GetTokenTTL() time.Duration {
	duration, err := time.ParseDuration(c.TokenTTL)
	if err != nil || duration <= 0 {
		return DefaultTokenTTL
	}
	return duration
}
