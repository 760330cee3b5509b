// Package response переводит ошибки домена в HTTP-ответы вида {"message": ...}.
package response

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"taskflow/internal/taskflow/adapters/http/dto"
	"taskflow/internal/taskflow/domain/entities"
	"taskflow/internal/taskflow/domain/services"
	"taskflow/pkg/logger"
)

// Тексты ответов.
const (
	MsgServerError        = "Server error"
	MsgInvalidToken       = "Invalid token"
	MsgNotAuthorized      = "Not authorized"
	MsgTaskNotFound       = "Task not found"
	MsgInvalidCredentials = "Invalid credentials"
	MsgUserExists         = "User exists"
	MsgInvalidBody        = "Invalid request body"
	MsgRouteNotFound      = "Route not found"

	logUnhandledError = "unhandled error"
)

// Ошибки валидации, текст которых отдается клиенту как есть.
var validationErrors = []error{
	entities.ErrEmptyName,
	entities.ErrInvalidEmail,
	entities.ErrPasswordTooShort,
	entities.ErrPasswordTooLong,
	entities.ErrEmptyTitle,
	entities.ErrInvalidPriority,
	dto.ErrInvalidDueDate,
}

// Classify возвращает HTTP-статус и сообщение для ошибки.
func Classify(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		return fiber.StatusUnauthorized, MsgInvalidToken
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusUnauthorized, MsgNotAuthorized
	case errors.Is(err, entities.ErrTaskNotFound):
		return fiber.StatusNotFound, MsgTaskNotFound
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.StatusBadRequest, MsgInvalidCredentials
	case errors.Is(err, services.ErrEmailAlreadyExists):
		return fiber.StatusBadRequest, MsgUserExists
	}

	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return fiber.StatusBadRequest, target.Error()
		}
	}

	return fiber.StatusInternalServerError, MsgServerError
}

// Message отправляет {"message": msg} с указанным статусом.
func Message(ctx fiber.Ctx, status int, msg string) error {
	if err := ctx.Status(status).JSON(dto.MessageResponse{Message: msg}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Error отправляет ответ для ошибки. Причина внутренних ошибок только логируется.
func Error(ctx fiber.Ctx, requestCtx context.Context, err error) error {
	status, msg := Classify(err)
	if status == fiber.StatusInternalServerError {
		logger.Log(requestCtx).Error(requestCtx, logUnhandledError, zap.Error(err))
	}
	return Message(ctx, status, msg)
}

// JSON отправляет тело ответа со статусом 200.
func JSON(ctx fiber.Ctx, body any) error {
	if err := ctx.Status(fiber.StatusOK).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ErrorHandler - обработчик ошибок приложения fiber для ошибок, не обработанных в хендлерах.
func ErrorHandler(ctx fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return Message(ctx, fiberErr.Code, fiberErr.Message)
	}
	return Error(ctx, ctx.Context(), err)
}

// NotFound отвечает на запросы к неизвестным маршрутам.
func NotFound(ctx fiber.Ctx) error {
	return Message(ctx, fiber.StatusNotFound, MsgRouteNotFound)
}
