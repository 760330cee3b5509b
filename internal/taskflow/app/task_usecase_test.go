package app_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskflow/internal/taskflow/app"
	"taskflow/internal/taskflow/domain/entities"
	"taskflow/internal/taskflow/domain/services"
	"taskflow/internal/taskflow/ports/api"
)

func ownedTask() *entities.Task {
	return &entities.Task{
		ID:        taskID,
		OwnerID:   userID,
		Title:     "buy milk",
		Priority:  entities.PriorityMedium,
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestListTasks(t *testing.T) {
	ctx := testContext(t)

	t.Run("returns owner tasks", func(t *testing.T) {
		repo := new(mockTaskRepository)
		repo.On("ListByOwner", mock.Anything, userID).Return([]*entities.Task{ownedTask()}, nil).Once()

		tasks, err := app.NewTaskUseCase(repo).ListTasks(ctx, userID)

		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, userID, tasks[0].OwnerID)
	})

	t.Run("nil result becomes empty slice", func(t *testing.T) {
		repo := new(mockTaskRepository)
		repo.On("ListByOwner", mock.Anything, userID).Return(nil, nil).Once()

		tasks, err := app.NewTaskUseCase(repo).ListTasks(ctx, userID)

		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := app.NewTaskUseCase(new(mockTaskRepository)).ListTasks(ctx, "")

		require.ErrorIs(t, err, services.ErrUnauthenticated)
	})

	t.Run("store failure", func(t *testing.T) {
		repo := new(mockTaskRepository)
		repo.On("ListByOwner", mock.Anything, userID).Return(nil, ErrDatabaseConnection).Once()

		_, err := app.NewTaskUseCase(repo).ListTasks(ctx, userID)

		require.ErrorIs(t, err, ErrDatabaseConnection)
	})
}

func TestCreateTask(t *testing.T) {
	ctx := testContext(t)
	due := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("defaults to medium priority", func(t *testing.T) {
		repo := new(mockTaskRepository)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(task *entities.Task) bool {
			return task.OwnerID == userID &&
				task.Title == "buy milk" &&
				task.Priority == entities.PriorityMedium &&
				!task.Completed &&
				task.DueDate == nil
		})).Return(ownedTask(), nil).Once()

		task, err := app.NewTaskUseCase(repo).CreateTask(ctx, userID, api.CreateTaskInput{Title: "  buy milk "})

		require.NoError(t, err)
		assert.Equal(t, taskID, task.ID)
		repo.AssertExpectations(t)
	})

	t.Run("honours priority and due date", func(t *testing.T) {
		repo := new(mockTaskRepository)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(task *entities.Task) bool {
			return task.Priority == entities.PriorityHigh && task.DueDate != nil && task.DueDate.Equal(due)
		})).Return(ownedTask(), nil).Once()

		_, err := app.NewTaskUseCase(repo).CreateTask(ctx, userID, api.CreateTaskInput{
			Title:    "report",
			Priority: "high",
			DueDate:  &due,
		})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("empty title", func(t *testing.T) {
		repo := new(mockTaskRepository)

		_, err := app.NewTaskUseCase(repo).CreateTask(ctx, userID, api.CreateTaskInput{Title: "   "})

		require.ErrorIs(t, err, entities.ErrEmptyTitle)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("invalid priority", func(t *testing.T) {
		repo := new(mockTaskRepository)

		_, err := app.NewTaskUseCase(repo).CreateTask(ctx, userID, api.CreateTaskInput{Title: "x", Priority: "urgent"})

		require.ErrorIs(t, err, entities.ErrInvalidPriority)
	})
}

func TestUpdateTask(t *testing.T) {
	ctx := testContext(t)

	t.Run("owner updates provided fields only", func(t *testing.T) {
		repo := new(mockTaskRepository)
		repo.On("FindByID", mock.Anything, taskID).Return(ownedTask(), nil).Once()
		repo.On("Update", mock.Anything, mock.MatchedBy(func(task *entities.Task) bool {
			return task.Title == "buy oat milk" && task.Completed && task.Priority == entities.PriorityMedium
		})).Return(ownedTask(), nil).Once()

		title := " buy oat milk "
		done := true
		_, err := app.NewTaskUseCase(repo).UpdateTask(ctx, userID, taskID, &entities.TaskPatch{
			Title:     &title,
			Completed: &done,
		})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("other user is forbidden and task unchanged", func(t *testing.T) {
		repo := new(mockTaskRepository)
		repo.On("FindByID", mock.Anything, taskID).Return(ownedTask(), nil).Once()

		title := "hijacked"
		_, err := app.NewTaskUseCase(repo).UpdateTask(ctx, otherID, taskID, &entities.TaskPatch{Title: &title})

		require.ErrorIs(t, err, services.ErrForbidden)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("missing task", func(t *testing.T) {
		repo := new(mockTaskRepository)
		repo.On("FindByID", mock.Anything, taskID).Return(nil, entities.ErrTaskNotFound).Once()

		_, err := app.NewTaskUseCase(repo).UpdateTask(ctx, userID, taskID, &entities.TaskPatch{})

		require.ErrorIs(t, err, entities.ErrTaskNotFound)
	})

	t.Run("blank title rejected after ownership check", func(t *testing.T) {
		repo := new(mockTaskRepository)
		repo.On("FindByID", mock.Anything, taskID).Return(ownedTask(), nil).Once()

		blank := "  "
		_, err := app.NewTaskUseCase(repo).UpdateTask(ctx, userID, taskID, &entities.TaskPatch{Title: &blank})

		require.ErrorIs(t, err, entities.ErrEmptyTitle)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("blank title from other user is forbidden", func(t *testing.T) {
		repo := new(mockTaskRepository)
		repo.On("FindByID", mock.Anything, taskID).Return(ownedTask(), nil).Once()

		blank := "  "
		_, err := app.NewTaskUseCase(repo).UpdateTask(ctx, otherID, taskID, &entities.TaskPatch{Title: &blank})

		require.ErrorIs(t, err, services.ErrForbidden)
		assert.NotErrorIs(t, err, entities.ErrEmptyTitle)
	})

	t.Run("task removed between check and write", func(t *testing.T) {
		repo := new(mockTaskRepository)
		repo.On("FindByID", mock.Anything, taskID).Return(ownedTask(), nil).Once()
		repo.On("Update", mock.Anything, mock.Anything).Return(nil, entities.ErrTaskNotFound).Once()

		_, err := app.NewTaskUseCase(repo).UpdateTask(ctx, userID, taskID, nil)

		require.ErrorIs(t, err, entities.ErrTaskNotFound)
	})
}

func TestAuthorizeTask(t *testing.T) {
	ctx := testContext(t)

	t.Run("owner", func(t *testing.T) {
		repo := new(mockTaskRepository)
		repo.On("FindByID", mock.Anything, taskID).Return(ownedTask(), nil).Once()

		task, err := app.NewTaskUseCase(repo).AuthorizeTask(ctx, userID, taskID)

		require.NoError(t, err)
		assert.Equal(t, taskID, task.ID)
	})

	t.Run("other user", func(t *testing.T) {
		repo := new(mockTaskRepository)
		repo.On("FindByID", mock.Anything, taskID).Return(ownedTask(), nil).Once()

		_, err := app.NewTaskUseCase(repo).AuthorizeTask(ctx, otherID, taskID)

		require.ErrorIs(t, err, services.ErrForbidden)
	})

	t.Run("missing task", func(t *testing.T) {
		repo := new(mockTaskRepository)
		repo.On("FindByID", mock.Anything, taskID).Return(nil, entities.ErrTaskNotFound).Once()

		_, err := app.NewTaskUseCase(repo).AuthorizeTask(ctx, userID, taskID)

		require.ErrorIs(t, err, entities.ErrTaskNotFound)
	})
}

func TestToggleCompletion(t *testing.T) {
	ctx := testContext(t)

	t.Run("toggle twice restores flag", func(t *testing.T) {
		repo := new(mockTaskRepository)
		done := ownedTask()
		done.Completed = true
		repo.On("FindByID", mock.Anything, taskID).Return(ownedTask(), nil).Twice()
		repo.On("ToggleCompleted", mock.Anything, taskID, userID).Return(done, nil).Once()
		repo.On("ToggleCompleted", mock.Anything, taskID, userID).Return(ownedTask(), nil).Once()
		uc := app.NewTaskUseCase(repo)

		first, err := uc.ToggleCompletion(ctx, userID, taskID)
		require.NoError(t, err)
		assert.True(t, first.Completed)

		second, err := uc.ToggleCompletion(ctx, userID, taskID)
		require.NoError(t, err)
		assert.False(t, second.Completed)
	})

	t.Run("other user", func(t *testing.T) {
		repo := new(mockTaskRepository)
		repo.On("FindByID", mock.Anything, taskID).Return(ownedTask(), nil).Once()

		_, err := app.NewTaskUseCase(repo).ToggleCompletion(ctx, otherID, taskID)

		require.ErrorIs(t, err, services.ErrForbidden)
		repo.AssertNotCalled(t, "ToggleCompleted", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeleteTask(t *testing.T) {
	ctx := testContext(t)

	t.Run("owner deletes", func(t *testing.T) {
		repo := new(mockTaskRepository)
		repo.On("FindByID", mock.Anything, taskID).Return(ownedTask(), nil).Once()
		repo.On("Delete", mock.Anything, taskID, userID).Return(nil).Once()

		require.NoError(t, app.NewTaskUseCase(repo).DeleteTask(ctx, userID, taskID))
		repo.AssertExpectations(t)
	})

	t.Run("other user", func(t *testing.T) {
		repo := new(mockTaskRepository)
		repo.On("FindByID", mock.Anything, taskID).Return(ownedTask(), nil).Once()

		err := app.NewTaskUseCase(repo).DeleteTask(ctx, otherID, taskID)

		require.ErrorIs(t, err, services.ErrForbidden)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		repo := new(mockTaskRepository)
		repo.On("FindByID", mock.Anything, taskID).Return(nil, errors.New("boom")).Once()

		err := app.NewTaskUseCase(repo).DeleteTask(ctx, userID, taskID)

		require.Error(t, err)
		assert.NotErrorIs(t, err, entities.ErrTaskNotFound)
	})
}
