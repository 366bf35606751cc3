package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/taskloom/todo-backend/internal/dto"
	"github.com/taskloom/todo-backend/internal/middleware"
	"github.com/taskloom/todo-backend/internal/services"
	"github.com/taskloom/todo-backend/internal/validation"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", nil)
	}

	user, tok, err := h.authService.Register(&req)
	if err != nil {
		var verrs validation.Errors
		switch {
		case errors.As(err, &verrs):
			return badRequest(c, "Validation failed", verrs)
		case errors.Is(err, services.ErrEmailTaken):
			return badRequest(c, err.Error(), nil)
		}
		return internalError(c, err)
	}

	c.Set(middleware.TokenHeader, tok)
	return c.JSON(dto.RegisterResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", nil)
	}

	tok, err := h.authService.Login(&req)
	if err != nil {
		var verrs validation.Errors
		switch {
		case errors.As(err, &verrs):
			return badRequest(c, "Validation failed", verrs)
		case errors.Is(err, services.ErrInvalidCredentials):
			return badRequest(c, err.Error(), nil)
		}
		return internalError(c, err)
	}

	return c.JSON(dto.TokenResponse{JWTToken: tok})
}

func (h *AuthHandler) GoogleSignIn(c *fiber.Ctx) error {
	var req dto.GoogleSignInRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", nil)
	}

	tok, err := h.authService.GoogleSignIn(c.Context(), &req)
	if err != nil {
		return h.providerError(c, err)
	}
	return c.JSON(dto.TokenResponse{JWTToken: tok})
}

func (h *AuthHandler) FacebookSignIn(c *fiber.Ctx) error {
	var req dto.FacebookSignInRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", nil)
	}

	tok, err := h.authService.FacebookSignIn(c.Context(), &req)
	if err != nil {
		return h.providerError(c, err)
	}
	return c.JSON(dto.TokenResponse{JWTToken: tok})
}

func (h *AuthHandler) providerError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrProviderVerification) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error:   true,
			Message: err.Error(),
		})
	}
	return internalError(c, err)
}

func badRequest(c *fiber.Ctx, message string, fields []validation.FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
		Fields:  fields,
	})
}

func internalError(c *fiber.Ctx, err error) error {
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
