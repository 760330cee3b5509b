package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"taskflow/internal/taskflow/domain/entities"
	"taskflow/internal/taskflow/ports/repositories"
	"taskflow/pkg/logger"
)

const taskColumns = `id, owner_id, title, description, priority, completed, due_date, created_at`

// TaskRepository реализует интерфейс repositories.TaskRepository.
type TaskRepository struct {
	pool PgxPoolInterface
}

// NewTaskRepository создает новый репозиторий задач.
func NewTaskRepository(pool PgxPoolInterface) repositories.TaskRepository {
	return &TaskRepository{pool: pool}
}

func scanTask(row pgx.Row) (*entities.Task, error) {
	var (
		task     entities.Task
		priority string
	)
	err := row.Scan(
		&task.ID,
		&task.OwnerID,
		&task.Title,
		&task.Description,
		&priority,
		&task.Completed,
		&task.DueDate,
		&task.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	task.Priority = entities.Priority(priority)
	return &task, nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Create сохраняет новую задачу и возвращает ее с присвоенными ID и временем создания.
func (r *TaskRepository) Create(ctx context.Context, task *entities.Task) (*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("method", "TaskRepository.Create"))
	log.Debug(ctx, "creating new task", zap.String("ownerID", task.OwnerID))

	created, err := scanTask(r.pool.QueryRow(ctx,
		`INSERT INTO tasks (owner_id, title, description, priority, due_date)
         VALUES ($1, $2, $3, $4, $5)
         RETURNING `+taskColumns,
		task.OwnerID, task.Title, task.Description, string(task.Priority), task.DueDate,
	))
	if err != nil {
		log.Error(ctx, "failed to create task", zap.Error(err))
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	log.Debug(ctx, "task created", zap.String("taskID", created.ID))
	return created, nil
}

// FindByID получает задачу по ID без учета владельца.
func (r *TaskRepository) FindByID(ctx context.Context, id string) (*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("method", "TaskRepository.FindByID"))

	if !validID(id) {
		log.Debug(ctx, "malformed task id", zap.String("taskID", id))
		return nil, entities.ErrTaskNotFound
	}

	task, err := scanTask(r.pool.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "task not found", zap.String("taskID", id))
			return nil, entities.ErrTaskNotFound
		}
		log.Error(ctx, "failed to get task", zap.Error(err))
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return task, nil
}

// ListByOwner возвращает задачи пользователя, новые первыми.
func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("method", "TaskRepository.ListByOwner"))
	log.Debug(ctx, "listing tasks", zap.String("ownerID", ownerID))

	tasks := make([]*entities.Task, 0)
	if !validID(ownerID) {
		return tasks, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+taskColumns+`
         FROM tasks
         WHERE owner_id = $1
         ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		log.Error(ctx, "failed to list tasks", zap.Error(err))
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error(ctx, "failed to scan task", zap.Error(err))
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return tasks, nil
}

// Update сохраняет изменяемые поля задачи. Запись ограничена владельцем.
func (r *TaskRepository) Update(ctx context.Context, task *entities.Task) (*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("method", "TaskRepository.Update"))
	log.Debug(ctx, "updating task", zap.String("taskID", task.ID))

	if !validID(task.ID) {
		return nil, entities.ErrTaskNotFound
	}

	updated, err := scanTask(r.pool.QueryRow(ctx,
		`UPDATE tasks
         SET title = $1, description = $2, priority = $3, completed = $4, due_date = $5
         WHERE id = $6 AND owner_id = $7
         RETURNING `+taskColumns,
		task.Title, task.Description, string(task.Priority), task.Completed, task.DueDate, task.ID, task.OwnerID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "task not found or not owned by user")
			return nil, entities.ErrTaskNotFound
		}
		log.Error(ctx, "failed to update task", zap.Error(err))
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return updated, nil
}

// ToggleCompleted инвертирует флаг выполнения одним запросом.
func (r *TaskRepository) ToggleCompleted(ctx context.Context, id, ownerID string) (*entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("method", "TaskRepository.ToggleCompleted"))
	log.Debug(ctx, "toggling task", zap.String("taskID", id))

	if !validID(id) {
		return nil, entities.ErrTaskNotFound
	}

	task, err := scanTask(r.pool.QueryRow(ctx,
		`UPDATE tasks SET completed = NOT completed
         WHERE id = $1 AND owner_id = $2
         RETURNING `+taskColumns,
		id, ownerID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "task not found or not owned by user")
			return nil, entities.ErrTaskNotFound
		}
		log.Error(ctx, "failed to toggle task", zap.Error(err))
		return nil, fmt.Errorf("failed to toggle task: %w", err)
	}

	return task, nil
}

// Delete удаляет задачу владельца.
func (r *TaskRepository) Delete(ctx context.Context, id, ownerID string) error {
	log := logger.Log(ctx).With(zap.String("method", "TaskRepository.Delete"))
	log.Debug(ctx, "deleting task", zap.String("taskID", id))

	if !validID(id) {
		return entities.ErrTaskNotFound
	}

	result, err := r.pool.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	if err != nil {
		log.Error(ctx, "failed to delete task", zap.Error(err))
		return fmt.Errorf("failed to delete task: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "task not found or not owned by user")
		return entities.ErrTaskNotFound
	}

	return nil
}
