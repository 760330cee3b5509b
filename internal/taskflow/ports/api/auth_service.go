// Package api определяет входные порты сервиса taskflow.
package api

import (
	"context"

	"taskflow/internal/taskflow/domain/services"
)

// AuthUseCase определяет операции регистрации и входа.
type AuthUseCase interface {
	Register(ctx context.Context, name, email, password string) (*services.AuthResult, error)

	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
}
