package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
)

// RequestObserver учитывает обработанные запросы.
type RequestObserver interface {
	ObserveRequest(method, route string, status int, took time.Duration)
}

// NewMetricsMiddleware учитывает запросы по шаблону маршрута, а не по фактическому пути.
func NewMetricsMiddleware(observer RequestObserver) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		start := time.Now()

		err := ctx.Next()

		route := ctx.Route().Path
		status := ctx.Response().StatusCode()
		if err != nil {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		observer.ObserveRequest(ctx.Method(), route, status, time.Since(start))

		return err
	}
}
