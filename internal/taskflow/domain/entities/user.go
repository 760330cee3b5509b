// Package entities содержит доменные сущности сервиса taskflow.
package entities

import (
	"errors"
	"time"
)

// Ошибки домена пользователя.
var (
	ErrEmptyUserID      = errors.New("user ID cannot be empty")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrPasswordTooShort = errors.New("password must contain at least 6 characters")
	ErrPasswordTooLong  = errors.New("password must not exceed 72 bytes")
	ErrUserNotFound     = errors.New("user not found")
)

// User представляет учетную запись пользователя.
// PasswordHash никогда не покидает слой приложения.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
