// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"taskflow/internal/taskflow/domain/entities"
)

// Ключи fiber.Locals.
const (
	LocalUserContext = "userContext"
	LocalUser        = "user"
)

// RequestContext возвращает контекст запроса, обогащенный промежуточным ПО.
func RequestContext(ctx fiber.Ctx) context.Context {
	if userCtx, ok := ctx.Locals(LocalUserContext).(context.Context); ok {
		return userCtx
	}
	return ctx.Context()
}

// CurrentUser возвращает пользователя, установленного NewAuthMiddleware.
func CurrentUser(ctx fiber.Ctx) (*entities.User, bool) {
	user, ok := ctx.Locals(LocalUser).(*entities.User)
	return user, ok && user != nil
}
