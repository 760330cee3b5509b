// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"taskflow/internal/taskflow/adapters/http/auth"
	"taskflow/internal/taskflow/adapters/http/health"
	"taskflow/internal/taskflow/adapters/http/middleware"
	"taskflow/internal/taskflow/adapters/http/response"
	"taskflow/internal/taskflow/adapters/http/tasks"
	"taskflow/internal/taskflow/ports/api"
)

// Dependencies содержит сценарии и инфраструктуру, нужные маршрутизатору.
type Dependencies struct {
	Auth    api.AuthUseCase
	Users   api.UserUseCase
	Tasks   api.TaskUseCase
	DB      health.Pinger
	Metrics middleware.RequestObserver
	// Gatherer публикуется на /metrics, если задан.
	Gatherer prometheus.Gatherer
}

// NewApp создает приложение fiber с обработчиком ошибок {"message": ...}.
func NewApp(cfg fiber.Config) *fiber.App {
	cfg.ErrorHandler = response.ErrorHandler
	return fiber.New(cfg)
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, deps Dependencies) {
	authHandler := auth.NewHandler(deps.Auth)
	tasksHandler := tasks.NewHandler(deps.Tasks)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	if deps.Metrics != nil {
		app.Use(middleware.NewMetricsMiddleware(deps.Metrics))
	}

	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	apiGroup := app.Group("/api")

	if deps.DB != nil {
		apiGroup.Get("/health", health.NewHandler(deps.DB).Check)
	}

	requireAuth := middleware.NewAuthMiddleware(deps.Users)

	// Auth routes.
	authRoutes := apiGroup.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Get("/user", authHandler.GetProfile, requireAuth)

	// Маршруты задач (требуют авторизации).
	taskRoutes := apiGroup.Group("/tasks", requireAuth)
	taskRoutes.Get("/", tasksHandler.ListTasks)
	taskRoutes.Post("/", tasksHandler.CreateTask)
	taskRoutes.Put("/:id", tasksHandler.UpdateTask)
	taskRoutes.Patch("/:id/completion", tasksHandler.ToggleCompletion)
	taskRoutes.Delete("/:id", tasksHandler.DeleteTask)

	// Обработчик для несуществующих маршрутов.
	app.Use(response.NotFound)
}
