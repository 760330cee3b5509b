package tasks_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskflow/internal/taskflow/adapters/http/middleware"
	"taskflow/internal/taskflow/adapters/http/tasks"
	"taskflow/internal/taskflow/domain/entities"
	"taskflow/internal/taskflow/domain/services"
	"taskflow/internal/taskflow/ports/api"
)

const (
	ownerID = "3f1e0c7a-2b4d-4c6e-8f90-1a2b3c4d5e6f"
	taskID  = "c0ffee00-1234-4abc-8def-0123456789ab"
)

type mockTaskUseCase struct {
	mock.Mock
}

func (m *mockTaskUseCase) ListTasks(ctx context.Context, userID string) ([]*entities.Task, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]*entities.Task)
	return list, args.Error(1)
}

func (m *mockTaskUseCase) CreateTask(ctx context.Context, userID string, input api.CreateTaskInput) (*entities.Task, error) {
	args := m.Called(ctx, userID, input)
	task, _ := args.Get(0).(*entities.Task)
	return task, args.Error(1)
}

func (m *mockTaskUseCase) UpdateTask(ctx context.Context, userID, id string, patch *entities.TaskPatch) (*entities.Task, error) {
	args := m.Called(ctx, userID, id, patch)
	task, _ := args.Get(0).(*entities.Task)
	return task, args.Error(1)
}

func (m *mockTaskUseCase) ToggleCompletion(ctx context.Context, userID, id string) (*entities.Task, error) {
	args := m.Called(ctx, userID, id)
	task, _ := args.Get(0).(*entities.Task)
	return task, args.Error(1)
}

func (m *mockTaskUseCase) DeleteTask(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *mockTaskUseCase) AuthorizeTask(ctx context.Context, userID, id string) (*entities.Task, error) {
	args := m.Called(ctx, userID, id)
	task, _ := args.Get(0).(*entities.Task)
	return task, args.Error(1)
}

type stubUsers struct{}

func (stubUsers) GetUserProfile(context.Context, string) (*entities.User, error) {
	return &entities.User{ID: ownerID}, nil
}

func (stubUsers) Authenticate(context.Context, string) (*entities.User, error) {
	return &entities.User{ID: ownerID, Name: "Ada"}, nil
}

func newApp(uc api.TaskUseCase, withAuth bool) *fiber.App {
	app := fiber.New()
	handler := tasks.NewHandler(uc)
	if withAuth {
		app.Use(middleware.NewAuthMiddleware(stubUsers{}))
	}
	app.Put("/tasks/:id", handler.UpdateTask)
	app.Get("/tasks", handler.ListTasks)
	return app
}

func send(t *testing.T, app *fiber.App, method, path, body string) (int, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.HeaderAuthToken, "token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func TestListTasksWithoutAuthenticatedUser(t *testing.T) {
	uc := new(mockTaskUseCase)

	status, body := send(t, newApp(uc, false), http.MethodGet, "/tasks", "")

	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.JSONEq(t, `{"message":"Invalid token"}`, body)
	uc.AssertNotCalled(t, "ListTasks", mock.Anything, mock.Anything)
}

func TestListTasksUsesUserFromContext(t *testing.T) {
	uc := new(mockTaskUseCase)
	uc.On("ListTasks", mock.Anything, ownerID).Return([]*entities.Task{}, nil).Once()

	status, body := send(t, newApp(uc, true), http.MethodGet, "/tasks", "")

	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `[]`, body)
	uc.AssertExpectations(t)
}

func TestUpdateTaskInvalidBody(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		authErr    error
		wantStatus int
		wantBody   string
	}{
		{name: "bad priority from other user", body: `{"priority":"urgent"}`, authErr: services.ErrForbidden, wantStatus: fiber.StatusUnauthorized, wantBody: `{"message":"Not authorized"}`},
		{name: "malformed json from other user", body: `{`, authErr: services.ErrForbidden, wantStatus: fiber.StatusUnauthorized, wantBody: `{"message":"Not authorized"}`},
		{name: "bad priority on missing task", body: `{"priority":"urgent"}`, authErr: entities.ErrTaskNotFound, wantStatus: fiber.StatusNotFound, wantBody: `{"message":"Task not found"}`},
		{name: "bad priority from owner", body: `{"priority":"urgent"}`, wantStatus: fiber.StatusBadRequest, wantBody: `{"message":"` + entities.ErrInvalidPriority.Error() + `"}`},
		{name: "malformed json from owner", body: `{`, wantStatus: fiber.StatusBadRequest, wantBody: `{"message":"Invalid request body"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockTaskUseCase)
			if tt.authErr != nil {
				uc.On("AuthorizeTask", mock.Anything, ownerID, taskID).Return(nil, tt.authErr).Once()
			} else {
				uc.On("AuthorizeTask", mock.Anything, ownerID, taskID).Return(&entities.Task{ID: taskID, OwnerID: ownerID}, nil).Once()
			}

			status, body := send(t, newApp(uc, true), http.MethodPut, "/tasks/"+taskID, tt.body)

			assert.Equal(t, tt.wantStatus, status)
			assert.JSONEq(t, tt.wantBody, body)
			uc.AssertExpectations(t)
			uc.AssertNotCalled(t, "UpdateTask", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
