package middleware_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/taskflow/adapters/http/middleware"
	"taskflow/internal/taskflow/domain/entities"
	"taskflow/internal/taskflow/domain/services"
	"taskflow/pkg/logger"
)

type observation struct {
	method string
	route  string
	status int
}

type recordingObserver struct {
	mu   sync.Mutex
	seen []observation
}

func (r *recordingObserver) ObserveRequest(method, route string, status int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, observation{method: method, route: route, status: status})
}

type stubUsers struct {
	user *entities.User
	err  error
}

func (s stubUsers) GetUserProfile(context.Context, string) (*entities.User, error) {
	return s.user, s.err
}

func (s stubUsers) Authenticate(context.Context, string) (*entities.User, error) {
	return s.user, s.err
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}

func TestRecoveryMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.NewRecoveryMiddleware())
	app.Get("/panic", func(fiber.Ctx) error {
		panic("boom")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/panic", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Server error"}`, body(t, resp))
}

func TestRequestIDMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.NewRequestIDMiddleware())
	app.Get("/", func(ctx fiber.Ctx) error {
		id, _ := logger.GetRequestID(middleware.RequestContext(ctx))
		return ctx.SendString(id)
	})

	t.Run("accepts client id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(logger.HeaderRequestID, "abc-123")
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, "abc-123", resp.Header.Get(logger.HeaderRequestID))
		assert.Equal(t, "abc-123", body(t, resp))
	})

	t.Run("generates id", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)

		id := resp.Header.Get(logger.HeaderRequestID)
		assert.NotEmpty(t, id)
		assert.Equal(t, id, body(t, resp))
	})

	t.Run("replaces overlong id", func(t *testing.T) {
		long := strings.Repeat("x", 200)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(logger.HeaderRequestID, long)
		resp, err := app.Test(req)
		require.NoError(t, err)

		id := resp.Header.Get(logger.HeaderRequestID)
		assert.NotEmpty(t, id)
		assert.NotEqual(t, long, id)
		_ = body(t, resp)
	})
}

func TestAuthMiddleware(t *testing.T) {
	user := &entities.User{ID: "user-1", Name: "Ada", Email: "ada@x.io"}

	newApp := func(users stubUsers) *fiber.App {
		app := fiber.New()
		app.Get("/me", func(ctx fiber.Ctx) error {
			current, ok := middleware.CurrentUser(ctx)
			if !ok {
				return ctx.SendStatus(fiber.StatusTeapot)
			}
			id, _ := middleware.UserIDFromContext(middleware.RequestContext(ctx))
			return ctx.SendString(current.Name + ":" + id)
		}, middleware.NewAuthMiddleware(users))
		return app
	}

	tests := []struct {
		name       string
		users      stubUsers
		token      string
		wantStatus int
		wantBody   string
	}{
		{name: "no token", users: stubUsers{user: user}, wantStatus: fiber.StatusUnauthorized, wantBody: `{"message":"No token"}`},
		{name: "invalid token", users: stubUsers{err: services.ErrUnauthenticated}, token: "bad", wantStatus: fiber.StatusUnauthorized, wantBody: `{"message":"Invalid token"}`},
		{name: "storage failure", users: stubUsers{err: errors.New("db down")}, token: "t", wantStatus: fiber.StatusInternalServerError, wantBody: `{"message":"Server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.token != "" {
				req.Header.Set(middleware.HeaderAuthToken, tt.token)
			}
			resp, err := newApp(tt.users).Test(req)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.JSONEq(t, tt.wantBody, body(t, resp))
		})
	}

	t.Run("authenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(middleware.HeaderAuthToken, "good")
		resp, err := newApp(stubUsers{user: user}).Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "Ada:user-1", body(t, resp))
	})
}

func TestMetricsMiddleware(t *testing.T) {
	observer := &recordingObserver{}
	app := fiber.New()
	app.Use(middleware.NewMetricsMiddleware(observer))
	app.Get("/tasks/:id", func(ctx fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/teapot", func(fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "teapot")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/tasks/42", nil))
	require.NoError(t, err)
	_ = body(t, resp)
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/teapot", nil))
	require.NoError(t, err)
	_ = body(t, resp)

	observer.mu.Lock()
	defer observer.mu.Unlock()
	require.Len(t, observer.seen, 2)
	assert.Equal(t, observation{method: http.MethodGet, route: "/tasks/:id", status: fiber.StatusNoContent}, observer.seen[0])
	assert.Equal(t, fiber.StatusTeapot, observer.seen[1].status)
}
