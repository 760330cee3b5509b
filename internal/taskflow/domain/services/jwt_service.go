package services

import (
	"errors"
	"time"
)

// Ошибки JWT.
var (
	ErrInvalidJWTToken    = errors.New("invalid JWT token")
	ErrGeneratingJWTToken = errors.New("failed to generate JWT token")
)

// JWTConfig содержит настройки JWT сервиса.
type JWTConfig struct {
	SecretKey []byte
	TokenTTL  time.Duration
}

// JWTClaims - доменное представление полезной нагрузки токена.
type JWTClaims struct {
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
