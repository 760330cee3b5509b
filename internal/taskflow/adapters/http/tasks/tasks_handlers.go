// Package tasks содержит HTTP-обработчики для управления задачами.
package tasks

import (
	"errors"

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
	LogHandlerListTasks        = "handling list tasks request"
	LogHandlerCreateTask       = "handling create task request"
	LogHandlerUpdateTask       = "handling update task request"
	LogHandlerToggleCompletion = "handling toggle completion request"
	LogHandlerDeleteTask       = "handling delete task request"

	ErrMsgInvalidRequestBody = "invalid request body"

	MsgTaskRemoved = "Task removed"
)

// Handler обработчик HTTP-запросов для работы с задачами.
type Handler struct {
	taskUseCase api.TaskUseCase
}

// NewHandler создает новый экземпляр обработчика задач.
func NewHandler(taskUseCase api.TaskUseCase) *Handler {
	return &Handler{
		taskUseCase: taskUseCase,
	}
}

func currentUserID(ctx fiber.Ctx) (string, error) {
	userID, ok := middleware.UserIDFromContext(middleware.RequestContext(ctx))
	if !ok || userID == "" {
		return "", services.ErrUnauthenticated
	}
	return userID, nil
}

// ListTasks возвращает задачи текущего пользователя.
func (h *Handler) ListTasks(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerListTasks)

	userID, err := currentUserID(ctx)
	if err != nil {
		return response.Error(ctx, requestCtx, err)
	}

	list, err := h.taskUseCase.ListTasks(requestCtx, userID)
	if err != nil {
		return response.Error(ctx, requestCtx, err)
	}

	return response.JSON(ctx, dto.NewTaskListResponse(list))
}

// CreateTask создает задачу текущего пользователя.
func (h *Handler) CreateTask(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateTask"))
	log.Debug(requestCtx, LogHandlerCreateTask)

	userID, err := currentUserID(ctx)
	if err != nil {
		return response.Error(ctx, requestCtx, err)
	}

	var req dto.CreateTaskRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		return h.badBody(ctx, log, err)
	}

	task, err := h.taskUseCase.CreateTask(requestCtx, userID, req.ToInput())
	if err != nil {
		return response.Error(ctx, requestCtx, err)
	}

	return response.JSON(ctx, dto.NewTaskResponse(task))
}

// UpdateTask частично обновляет задачу. Ошибки тела запроса сообщаются только владельцу.
func (h *Handler) UpdateTask(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UpdateTask"))
	log.Debug(requestCtx, LogHandlerUpdateTask)

	userID, err := currentUserID(ctx)
	if err != nil {
		return response.Error(ctx, requestCtx, err)
	}

	taskID := ctx.Params("id")

	var req dto.UpdateTaskRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		if _, authErr := h.taskUseCase.AuthorizeTask(requestCtx, userID, taskID); authErr != nil {
			return response.Error(ctx, requestCtx, authErr)
		}
		return h.badBody(ctx, log, err)
	}

	patch, err := req.ToPatch()
	if err != nil {
		if _, authErr := h.taskUseCase.AuthorizeTask(requestCtx, userID, taskID); authErr != nil {
			return response.Error(ctx, requestCtx, authErr)
		}
		return response.Error(ctx, requestCtx, err)
	}

	task, err := h.taskUseCase.UpdateTask(requestCtx, userID, taskID, patch)
	if err != nil {
		return response.Error(ctx, requestCtx, err)
	}

	return response.JSON(ctx, dto.NewTaskResponse(task))
}

// ToggleCompletion инвертирует флаг выполнения.
func (h *Handler) ToggleCompletion(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerToggleCompletion)

	userID, err := currentUserID(ctx)
	if err != nil {
		return response.Error(ctx, requestCtx, err)
	}

	task, err := h.taskUseCase.ToggleCompletion(requestCtx, userID, ctx.Params("id"))
	if err != nil {
		return response.Error(ctx, requestCtx, err)
	}

	return response.JSON(ctx, dto.NewTaskResponse(task))
}

// DeleteTask удаляет задачу.
func (h *Handler) DeleteTask(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerDeleteTask)

	userID, err := currentUserID(ctx)
	if err != nil {
		return response.Error(ctx, requestCtx, err)
	}

	if err := h.taskUseCase.DeleteTask(requestCtx, userID, ctx.Params("id")); err != nil {
		return response.Error(ctx, requestCtx, err)
	}

	return response.JSON(ctx, dto.MessageResponse{Message: MsgTaskRemoved})
}

// badBody отвечает 400. Неверный dueDate сообщается своим текстом.
func (h *Handler) badBody(ctx fiber.Ctx, log *logger.Logger, err error) error {
	requestCtx := middleware.RequestContext(ctx)
	log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
	if errors.Is(err, dto.ErrInvalidDueDate) {
		return response.Message(ctx, fiber.StatusBadRequest, dto.ErrInvalidDueDate.Error())
	}
	return response.Message(ctx, fiber.StatusBadRequest, response.MsgInvalidBody)
}
