package middleware

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"taskflow/internal/taskflow/domain/services"
	"taskflow/internal/taskflow/ports/api"
	"taskflow/pkg/logger"
)

// Константы для логирования и ответов.
const (
	HeaderAuthToken = "x-auth-token" //nolint:gosec

	LogAuthMiddleware = "auth middleware"
	LogTokenMissing   = "no token provided"
	LogTokenRejected  = "token rejected"
	LogAuthFailed     = "failed to authenticate request"

	MsgNoToken      = "No token"
	MsgInvalidToken = "Invalid token"
	MsgServerError  = "Server error"
)

type userIDKeyType struct{}

var userIDKey = userIDKeyType{}

// UserIDFromContext возвращает ID аутентифицированного пользователя.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// NewAuthMiddleware проверяет x-auth-token и кладет пользователя в fiber.Locals.
func NewAuthMiddleware(users api.UserUseCase) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := RequestContext(ctx)
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		token := ctx.Get(HeaderAuthToken)
		if token == "" {
			log.Debug(requestCtx, LogTokenMissing)
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": MsgNoToken})
		}

		user, err := users.Authenticate(requestCtx, token)
		if err != nil {
			if errors.Is(err, services.ErrUnauthenticated) {
				log.Debug(requestCtx, LogTokenRejected, zap.Error(err))
				return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": MsgInvalidToken})
			}
			log.Error(requestCtx, LogAuthFailed, zap.Error(err))
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": MsgServerError})
		}

		ctx.Locals(LocalUser, user)
		ctx.Locals(LocalUserContext, context.WithValue(requestCtx, userIDKey, user.ID))

		return ctx.Next()
	}
}
