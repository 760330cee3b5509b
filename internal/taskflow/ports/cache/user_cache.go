// Package cache определяет порт кэша профилей пользователей.
package cache

import (
	"context"

	"taskflow/internal/taskflow/domain/entities"
)

// UserCache хранит профили пользователей без хэша пароля.
// Get возвращает (nil, nil) при промахе.
type UserCache interface {
	Get(ctx context.Context, userID string) (*entities.User, error)

	Set(ctx context.Context, user *entities.User) error

	Close() error
}
