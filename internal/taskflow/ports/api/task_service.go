package api

import (
	"context"
	"time"

	"taskflow/internal/taskflow/domain/entities"
)

// CreateTaskInput содержит данные новой задачи.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    string
	DueDate     *time.Time
}

// TaskUseCase определяет операции над задачами текущего пользователя.
type TaskUseCase interface {
	ListTasks(ctx context.Context, userID string) ([]*entities.Task, error)

	CreateTask(ctx context.Context, userID string, input CreateTaskInput) (*entities.Task, error)

	UpdateTask(ctx context.Context, userID, taskID string, patch *entities.TaskPatch) (*entities.Task, error)

	ToggleCompletion(ctx context.Context, userID, taskID string) (*entities.Task, error)

	DeleteTask(ctx context.Context, userID, taskID string) error

	// AuthorizeTask возвращает задачу, если она принадлежит пользователю.
	AuthorizeTask(ctx context.Context, userID, taskID string) (*entities.Task, error)
}
