// Package services содержит реализации сервисов паролей (bcrypt) и токенов (JWT).
package services

import (
	"time"

	"taskflow/internal/taskflow/ports/services"
)

// ServiceFactory создает сервисы аутентификации.
type ServiceFactory struct {
	passwordService services.PasswordService
	tokenService    services.TokenService
}

// NewServiceFactory создает фабрику сервисов.
func NewServiceFactory(jwtSecretKey string, tokenTTL time.Duration, bcryptCost int) *ServiceFactory {
	return &ServiceFactory{
		passwordService: NewBcrypt(bcryptCost),
		tokenService:    NewJWT(jwtSecretKey, tokenTTL),
	}
}

// PasswordService возвращает сервис паролей.
func (f *ServiceFactory) PasswordService() services.PasswordService {
	return f.passwordService
}

// TokenService возвращает сервис токенов.
func (f *ServiceFactory) TokenService() services.TokenService {
	return f.tokenService
}
