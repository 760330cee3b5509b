package middleware

import (
	"github.com/gofiber/fiber/v3"

	"taskflow/pkg/logger"
)

const maxRequestIDLength = 128

// NewRequestIDMiddleware принимает X-Request-ID клиента или генерирует новый
// и возвращает его в ответе.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestID := ctx.Get(logger.HeaderRequestID)
		if len(requestID) > maxRequestIDLength {
			requestID = ""
		}

		requestCtx := logger.NewRequestIDContext(RequestContext(ctx), requestID)
		requestID, _ = logger.GetRequestID(requestCtx)

		ctx.Locals(LocalUserContext, requestCtx)
		ctx.Set(logger.HeaderRequestID, requestID)

		return ctx.Next()
	}
}
