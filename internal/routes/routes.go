package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/taskloom/todo-backend/internal/config"
	"github.com/taskloom/todo-backend/internal/handlers"
	"github.com/taskloom/todo-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	todoHandler *handlers.TodoHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/google", authHandler.GoogleSignIn)
	auth.Post("/facebook", authHandler.FacebookSignIn)

	// Todos — token required. Literal routes are registered before /:id so
	// /completed and /pending don't get captured as ids.
	todo := api.Group("/todo", middleware.Protected(cfg))
	todo.Get("/", todoHandler.List)
	todo.Get("/completed", todoHandler.ListCompleted)
	todo.Get("/pending", todoHandler.ListPending)
	todo.Post("/", todoHandler.Create)
	todo.Get("/:id", todoHandler.Get)
	todo.Put("/:id", todoHandler.Update)
	todo.Patch("/:id", todoHandler.ToggleCompletion)
}
