package routes

import (
	auth_handlers "dilek.link/handlers/auth"
	"dilek.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerAuthRoutes /auth altındaki rotaları tanımlar.
func registerAuthRoutes(app *fiber.App) {
	authHandler := auth_handlers.NewAuthHandler()

	authGroup := app.Group("/auth")
	authGroup.Post("/register", authHandler.Register)                // POST /auth/register
	authGroup.Post("/login", authHandler.Login)                      // POST /auth/login
	authGroup.Get("/me", middlewares.AuthRequired(), authHandler.Me) // GET /auth/me
}
