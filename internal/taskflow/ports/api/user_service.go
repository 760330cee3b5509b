package api

import (
	"context"

	"taskflow/internal/taskflow/domain/entities"
)

// UserUseCase определяет операции над пользователями.
type UserUseCase interface {
	GetUserProfile(ctx context.Context, userID string) (*entities.User, error)

	// Authenticate разрешает токен в существующего пользователя.
	Authenticate(ctx context.Context, token string) (*entities.User, error)
}
