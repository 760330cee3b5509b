// Package auth содержит HTTP обработчики регистрации, входа и профиля.
package auth

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"taskflow/internal/taskflow/adapters/http/dto"
	"taskflow/internal/taskflow/adapters/http/middleware"
	"taskflow/internal/taskflow/adapters/http/response"
	"taskflow/internal/taskflow/domain/services"
	"taskflow/internal/taskflow/ports/api"
	"taskflow/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister   = "auth handler: register"
	LogHandlerLogin      = "auth handler: login"
	LogHandlerGetProfile = "auth handler: get profile"

	ErrorInvalidRequest = "invalid request"
)

// Handler содержит HTTP обработчики для авторизации.
type Handler struct {
	authUseCase api.AuthUseCase
}

// NewHandler создает новый экземпляр обработчика авторизации.
func NewHandler(authUseCase api.AuthUseCase) *Handler {
	return &Handler{
		authUseCase: authUseCase,
	}
}

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return response.Message(ctx, fiber.StatusBadRequest, response.MsgInvalidBody)
	}

	result, err := h.authUseCase.Register(requestCtx, req.Name, req.Email, req.Password)
	if err != nil {
		return response.Error(ctx, requestCtx, err)
	}

	return response.JSON(ctx, dto.NewAuthResponse(result))
}

// Login обрабатывает запрос на вход пользователя.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return response.Message(ctx, fiber.StatusBadRequest, response.MsgInvalidBody)
	}

	result, err := h.authUseCase.Login(requestCtx, req.Email, req.Password)
	if err != nil {
		return response.Error(ctx, requestCtx, err)
	}

	return response.JSON(ctx, dto.NewAuthResponse(result))
}

// GetProfile возвращает текущего пользователя.
func (h *Handler) GetProfile(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerGetProfile)

	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		return response.Error(ctx, requestCtx, services.ErrUnauthenticated)
	}

	return response.JSON(ctx, dto.NewProfileResponse(user))
}
