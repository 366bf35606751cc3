package dto

import (
	"github.com/google/uuid"

	"github.com/taskloom/todo-backend/internal/validation"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GoogleSignInRequest struct {
	TokenID string `json:"tokenId"`
}

type FacebookSignInRequest struct {
	UserID      string `json:"userID"`
	AccessToken string `json:"accessToken"`
}

// RegisterResponse carries the public user fields; the token travels in the
// x-auth-token response header.
type RegisterResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type TokenResponse struct {
	JWTToken string `json:"jwtToken"`
}

type ErrorResponse struct {
	Error   bool                    `json:"error"`
	Message string                  `json:"message"`
	Fields  []validation.FieldError `json:"fields,omitempty"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
