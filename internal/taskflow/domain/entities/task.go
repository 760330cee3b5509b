package entities

import (
	"errors"
	"strings"
	"time"
)

// Ошибки домена задач.
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrInvalidPriority = errors.New("priority must be one of low, medium, high")
)

// Priority - приоритет задачи.
type Priority string

// Допустимые приоритеты.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority используется, если приоритет не указан.
const DefaultPriority = PriorityMedium

// ParsePriority проверяет строку приоритета. Пустая строка дает DefaultPriority.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DefaultPriority, nil
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	default:
		return "", ErrInvalidPriority
	}
}

// Task представляет задачу пользователя.
type Task struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Priority    Priority
	Completed   bool
	DueDate     *time.Time
	CreatedAt   time.Time
}

// OwnedBy сообщает, принадлежит ли задача пользователю.
func (t *Task) OwnedBy(userID string) bool {
	return t.OwnerID != "" && t.OwnerID == userID
}

// TaskPatch содержит изменяемые поля задачи. nil означает "не менять".
// ClearDueDate сбрасывает срок выполнения и имеет приоритет над DueDate.
type TaskPatch struct {
	Title        *string
	Description  *string
	Completed    *bool
	Priority     *Priority
	DueDate      *time.Time
	ClearDueDate bool
}

// Apply применяет изменения к задаче. ID, OwnerID и CreatedAt не меняются.
func (p *TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	switch {
	case p.ClearDueDate:
		t.DueDate = nil
	case p.DueDate != nil:
		due := *p.DueDate
		t.DueDate = &due
	}
}
