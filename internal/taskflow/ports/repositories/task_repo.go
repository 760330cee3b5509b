package repositories

import (
	"context"

	"taskflow/internal/taskflow/domain/entities"
)

// TaskRepository определяет операции хранилища задач.
// Изменяющие операции ограничены владельцем: задача другого пользователя
// считается отсутствующей (entities.ErrTaskNotFound).
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) (*entities.Task, error)

	FindByID(ctx context.Context, id string) (*entities.Task, error)

	ListByOwner(ctx context.Context, ownerID string) ([]*entities.Task, error)

	Update(ctx context.Context, task *entities.Task) (*entities.Task, error)

	ToggleCompleted(ctx context.Context, id, ownerID string) (*entities.Task, error)

	Delete(ctx context.Context, id, ownerID string) error
}
