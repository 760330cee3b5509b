package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"taskflow/internal/taskflow/domain/entities"
	"taskflow/internal/taskflow/ports/api"
)

// ErrInvalidDueDate - срок выполнения не является датой.
var ErrInvalidDueDate = errors.New("dueDate must be an RFC 3339 timestamp or YYYY-MM-DD date")

const dateOnlyLayout = "2006-01-02"

// OptionalTime различает отсутствующее поле, явный null и значение.
type OptionalTime struct {
	Set   bool
	Value *time.Time
}

// UnmarshalJSON вызывается только для присутствующего поля.
func (o *OptionalTime) UnmarshalJSON(data []byte) error {
	o.Set = true
	o.Value = nil

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDueDate, err)
	}
	if raw == "" {
		return nil
	}

	parsed, err := parseDueDate(raw)
	if err != nil {
		return err
	}
	o.Value = &parsed
	return nil
}

func parseDueDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(dateOnlyLayout, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, ErrInvalidDueDate
}

// CreateTaskRequest содержит данные новой задачи.
type CreateTaskRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Priority    string       `json:"priority"`
	DueDate     OptionalTime `json:"dueDate"`
}

// ToInput преобразует запрос во входные данные сценария.
func (r *CreateTaskRequest) ToInput() api.CreateTaskInput {
	return api.CreateTaskInput{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		DueDate:     r.DueDate.Value,
	}
}

// UpdateTaskRequest содержит изменяемые поля. Отсутствующие поля не меняются.
type UpdateTaskRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Completed   *bool        `json:"completed"`
	Priority    *string      `json:"priority"`
	DueDate     OptionalTime `json:"dueDate"`
}

// ToPatch преобразует запрос в изменения задачи.
func (r *UpdateTaskRequest) ToPatch() (*entities.TaskPatch, error) {
	patch := &entities.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
	}

	if r.Priority != nil {
		if *r.Priority == "" {
			return nil, entities.ErrInvalidPriority
		}
		priority, err := entities.ParsePriority(*r.Priority)
		if err != nil {
			return nil, err
		}
		patch.Priority = &priority
	}

	if r.DueDate.Set {
		if r.DueDate.Value == nil {
			patch.ClearDueDate = true
		} else {
			patch.DueDate = r.DueDate.Value
		}
	}

	return patch, nil
}

// TaskResponse - публичное представление задачи.
type TaskResponse struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"ownerId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	Completed   bool       `json:"completed"`
	DueDate     *time.Time `json:"dueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// MessageResponse - ответ с единственным сообщением.
type MessageResponse struct {
	Message string `json:"message"`
}

// NewTaskResponse преобразует задачу в ответ.
func NewTaskResponse(task *entities.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		OwnerID:     task.OwnerID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    string(task.Priority),
		Completed:   task.Completed,
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
	}
}

// NewTaskListResponse преобразует список задач. Пустой список кодируется как [].
func NewTaskListResponse(tasks []*entities.Task) []TaskResponse {
	resp := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		resp = append(resp, NewTaskResponse(task))
	}
	return resp
}
