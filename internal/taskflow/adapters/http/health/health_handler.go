// Package health содержит обработчик проверки готовности сервиса.
package health

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"taskflow/internal/taskflow/adapters/http/middleware"
	"taskflow/pkg/logger"
)

const (
	pingTimeout = 2 * time.Second

	StatusOK          = "ok"
	StatusUnavailable = "unavailable"

	LogHealthCheckFailed = "health check failed"
)

// Pinger проверяет доступность зависимости.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler отвечает на GET /api/health.
type Handler struct {
	db Pinger
}

// NewHandler создает обработчик проверки готовности.
func NewHandler(db Pinger) *Handler {
	return &Handler{db: db}
}

// Check проверяет соединение с БД.
func (h *Handler) Check(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	pingCtx, cancel := context.WithTimeout(requestCtx, pingTimeout)
	defer cancel()

	if err := h.db.Ping(pingCtx); err != nil {
		logger.Log(requestCtx).Warn(requestCtx, LogHealthCheckFailed, zap.Error(err))
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": StatusUnavailable})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"status": StatusOK})
}
