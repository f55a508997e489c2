package middlewares

import (
	"strings"

	"dilek.link/services"

	"github.com/gofiber/fiber/v2"
)

// Bearer token'ı çözüp kullanıcıyı locals'a koyan middleware'ler.
// AuthRequired korumalı (panel) rotalar için; OptionalAuth public yüzey için:
// token geçersizse istek anonim devam eder, asla reddedilmez.

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// AuthRequired geçerli bir bearer token ister; yoksa 401 döner.
func AuthRequired() fiber.Handler {
	authService := services.NewAuthService()
	return func(c *fiber.Ctx) error {
		user, err := authService.VerifyToken(c.UserContext(), bearerToken(c))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "kimlik doğrulama gerekli"})
		}
		c.Locals("userID", user.ID)
		c.Locals("userEmail", user.Email)
		c.Locals("currentUser", user)
		return c.Next()
	}
}

// OptionalAuth token varsa çözer, yoksa veya geçersizse sessizce devam eder.
func OptionalAuth() fiber.Handler {
	authService := services.NewAuthService()
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Next()
		}
		user, err := authService.VerifyToken(c.UserContext(), token)
		if err != nil {
			return c.Next()
		}
		c.Locals("userID", user.ID)
		c.Locals("userEmail", user.Email)
		c.Locals("currentUser", user)
		return c.Next()
	}
}
