package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"taskflow/internal/taskflow/domain/entities"
	"taskflow/internal/taskflow/domain/services"
	"taskflow/internal/taskflow/ports/api"
	"taskflow/internal/taskflow/ports/repositories"
	"taskflow/pkg/logger"
)

const (
	methodListTasks        = "ListTasks"
	methodCreateTask       = "CreateTask"
	methodUpdateTask       = "UpdateTask"
	methodToggleCompletion = "ToggleCompletion"
	methodDeleteTask       = "DeleteTask"
	methodAuthorizeTask    = "authorizeTask"

	msgTaskNotOwned  = "task belongs to another user"
	msgTaskCreated   = "task created"
	msgTaskUpdated   = "task updated"
	msgTaskToggled   = "task completion toggled"
	msgTaskDeleted   = "task deleted"
	msgInvalidInput  = "invalid task input"
	msgErrTaskAccess = "failed to access task"

	errCtxListingTasks     = "listing tasks"
	errCtxValidatingTask   = "validating task"
	errCtxCreatingTask     = "creating task"
	errCtxLoadingTask      = "loading task"
	errCtxCheckingOwner    = "checking task owner"
	errCtxUpdatingTask     = "updating task"
	errCtxTogglingTask     = "toggling task"
	errCtxDeletingTask     = "deleting task"
	errCtxMissingTaskOwner = "missing task owner"
)

// TaskUseCaseImpl реализует интерфейс TaskUseCase.
type TaskUseCaseImpl struct {
	taskRepo repositories.TaskRepository
}

// NewTaskUseCase создает сервис задач.
func NewTaskUseCase(taskRepo repositories.TaskRepository) api.TaskUseCase {
	return &TaskUseCaseImpl{taskRepo: taskRepo}
}

// ListTasks возвращает задачи пользователя, новые первыми.
func (s *TaskUseCaseImpl) ListTasks(ctx context.Context, userID string) ([]*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListTasks), zap.String("userID", userID))

	if userID == "" {
		return nil, fmt.Errorf("%s: %w", errCtxMissingTaskOwner, services.ErrUnauthenticated)
	}

	tasks, err := s.taskRepo.ListByOwner(ctx, userID)
	if err != nil {
		log.Error(ctx, msgErrTaskAccess, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingTasks, err)
	}
	if tasks == nil {
		tasks = make([]*entities.Task, 0)
	}

	return tasks, nil
}

// CreateTask создает задачу пользователя. Приоритет по умолчанию - medium.
func (s *TaskUseCaseImpl) CreateTask(ctx context.Context, userID string, input api.CreateTaskInput) (*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateTask), zap.String("userID", userID))

	if userID == "" {
		return nil, fmt.Errorf("%s: %w", errCtxMissingTaskOwner, services.ErrUnauthenticated)
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		log.Debug(ctx, msgInvalidInput, zap.Error(entities.ErrEmptyTitle))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingTask, entities.ErrEmptyTitle)
	}

	priority, err := entities.ParsePriority(input.Priority)
	if err != nil {
		log.Debug(ctx, msgInvalidInput, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingTask, err)
	}

	created, err := s.taskRepo.Create(ctx, &entities.Task{
		OwnerID:     userID,
		Title:       title,
		Description: input.Description,
		Priority:    priority,
		DueDate:     input.DueDate,
	})
	if err != nil {
		log.Error(ctx, msgErrTaskAccess, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingTask, err)
	}

	log.Info(ctx, msgTaskCreated, zap.String("taskID", created.ID))
	return created, nil
}

// UpdateTask частично обновляет задачу владельца.
func (s *TaskUseCaseImpl) UpdateTask(
	ctx context.Context,
	userID, taskID string,
	patch *entities.TaskPatch,
) (*entities.Task, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodUpdateTask),
		zap.String("userID", userID),
		zap.String("taskID", taskID),
	)

	task, err := s.authorizeTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if patch == nil {
		patch = &entities.TaskPatch{}
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			log.Debug(ctx, msgInvalidInput, zap.Error(entities.ErrEmptyTitle))
			return nil, fmt.Errorf("%s: %w", errCtxValidatingTask, entities.ErrEmptyTitle)
		}
		patch.Title = &title
	}

	patch.Apply(task)

	updated, err := s.taskRepo.Update(ctx, task)
	if err != nil {
		if !errors.Is(err, entities.ErrTaskNotFound) {
			log.Error(ctx, msgErrTaskAccess, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingTask, err)
	}

	log.Info(ctx, msgTaskUpdated)
	return updated, nil
}

// ToggleCompletion инвертирует флаг выполнения задачи владельца.
func (s *TaskUseCaseImpl) ToggleCompletion(ctx context.Context, userID, taskID string) (*entities.Task, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodToggleCompletion),
		zap.String("userID", userID),
		zap.String("taskID", taskID),
	)

	if _, err := s.authorizeTask(ctx, userID, taskID); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.ToggleCompleted(ctx, taskID, userID)
	if err != nil {
		if !errors.Is(err, entities.ErrTaskNotFound) {
			log.Error(ctx, msgErrTaskAccess, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxTogglingTask, err)
	}

	log.Info(ctx, msgTaskToggled, zap.Bool("completed", task.Completed))
	return task, nil
}

// DeleteTask удаляет задачу владельца.
func (s *TaskUseCaseImpl) DeleteTask(ctx context.Context, userID, taskID string) error {
	log := logger.Log(ctx).With(
		zap.String("method", methodDeleteTask),
		zap.String("userID", userID),
		zap.String("taskID", taskID),
	)

	if _, err := s.authorizeTask(ctx, userID, taskID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, taskID, userID); err != nil {
		if !errors.Is(err, entities.ErrTaskNotFound) {
			log.Error(ctx, msgErrTaskAccess, zap.Error(err))
		}
		return fmt.Errorf("%s: %w", errCtxDeletingTask, err)
	}

	log.Info(ctx, msgTaskDeleted)
	return nil
}

// authorizeTask загружает задачу и проверяет, что она принадлежит userID.
// AuthorizeTask проверяет, что задача существует и принадлежит пользователю.
func (s *TaskUseCaseImpl) AuthorizeTask(ctx context.Context, userID, taskID string) (*entities.Task, error) {
	return s.authorizeTask(ctx, userID, taskID)
}

func (s *TaskUseCaseImpl) authorizeTask(ctx context.Context, userID, taskID string) (*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("method", methodAuthorizeTask), zap.String("taskID", taskID))

	if userID == "" {
		return nil, fmt.Errorf("%s: %w", errCtxMissingTaskOwner, services.ErrUnauthenticated)
	}

	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if !errors.Is(err, entities.ErrTaskNotFound) {
			log.Error(ctx, msgErrTaskAccess, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxLoadingTask, err)
	}

	if !task.OwnedBy(userID) {
		log.Warn(ctx, msgTaskNotOwned, zap.String("userID", userID))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingOwner, services.ErrForbidden)
	}

	return task, nil
}
