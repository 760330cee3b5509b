// Package repositories определяет порты хранилища сервиса taskflow.
package repositories

import (
	"context"

	"taskflow/internal/taskflow/domain/entities"
)

// UserRepository определяет операции хранилища учетных записей.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id string) (*entities.User, error)

	FindByEmail(ctx context.Context, email string) (*entities.User, error)
}
