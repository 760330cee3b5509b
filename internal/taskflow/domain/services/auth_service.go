// Package services содержит доменные типы и ошибки аутентификации и авторизации.
package services

import (
	"errors"
	"time"

	"taskflow/internal/taskflow/domain/entities"
)

// Ошибки домена аутентификации и авторизации.
var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrEmailAlreadyExists    = errors.New("user with this email already exists")
	ErrTokenGenerationFailed = errors.New("failed to generate authentication token")
	ErrUnauthenticated       = errors.New("unauthenticated")
	ErrForbidden             = errors.New("not authorized to access this task")
)

// AuthResult - результат регистрации или входа.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *entities.User
}
