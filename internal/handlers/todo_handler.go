package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/taskloom/todo-backend/internal/dto"
	"github.com/taskloom/todo-backend/internal/middleware"
	"github.com/taskloom/todo-backend/internal/services"
	"github.com/taskloom/todo-backend/internal/token"
	"github.com/taskloom/todo-backend/internal/validation"
)

type TodoHandler struct {
	todoService *services.TodoService
	tokens      *token.Service
}

func NewTodoHandler(todoService *services.TodoService, tokens *token.Service) *TodoHandler {
	return &TodoHandler{todoService: todoService, tokens: tokens}
}

func (h *TodoHandler) List(c *fiber.Ctx) error {
	return h.list(c, nil)
}

func (h *TodoHandler) ListCompleted(c *fiber.Ctx) error {
	completed := true
	return h.list(c, &completed)
}

func (h *TodoHandler) ListPending(c *fiber.Ctx) error {
	completed := false
	return h.list(c, &completed)
}

func (h *TodoHandler) list(c *fiber.Ctx, completed *bool) error {
	todos, err := h.todoService.List(h.callerID(c), completed)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(todos)
}

func (h *TodoHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", nil)
	}

	todo, err := h.todoService.Create(h.callerID(c), req)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(todo)
}

func (h *TodoHandler) Get(c *fiber.Ctx) error {
	todo, err := h.todoService.Get(h.callerID(c), c.Params("id"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(todo)
}

func (h *TodoHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", nil)
	}

	todo, err := h.todoService.Update(h.callerID(c), c.Params("id"), req)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(todo)
}

func (h *TodoHandler) ToggleCompletion(c *fiber.Ctx) error {
	todo, err := h.todoService.ToggleCompletion(h.callerID(c), c.Params("id"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(todo)
}

// callerID re-decodes the header token to identify the caller. The Protected
// middleware has already verified the signature on this request, so an
// unverified decode is safe here.
func (h *TodoHandler) callerID(c *fiber.Ctx) uuid.UUID {
	return h.tokens.Decode(c.Get(middleware.TokenHeader))
}

func (h *TodoHandler) respondError(c *fiber.Ctx, err error) error {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		return badRequest(c, "Validation failed", verrs)
	case errors.Is(err, services.ErrTodoNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error:   true,
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrNotOwner):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error:   true,
			Message: err.Error(),
		})
	}
	return internalError(c, err)
}
