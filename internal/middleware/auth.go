package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"

	"github.com/taskloom/todo-backend/internal/config"
	"github.com/taskloom/todo-backend/internal/dto"
)

// TokenHeader is where clients present their identity token.
const TokenHeader = "x-auth-token"

// Protected rejects requests whose x-auth-token header is missing, malformed,
// or carries a bad signature. Handlers behind it may trust the token enough to
// decode it without re-verifying.
func Protected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		TokenLookup: "header:" + TokenHeader,
		AuthScheme:  "",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: missing or invalid token",
			})
		},
	})
}
