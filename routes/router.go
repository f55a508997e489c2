package routes

import (
	"dilek.link/configs"
	"dilek.link/pkg/realtime"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes tüm uygulama rotalarını ve genel middleware'leri ayarlar.
func SetupRoutes(app *fiber.App, hub *realtime.Hub) {
	// --- Genel Middleware'ler ---
	app.Use(recoverMiddleware.New()) // Panic yakalama
	app.Use(logger.New())            // İstek loglama
	app.Use(cors.New(cors.Config{
		AllowOrigins: configs.Get().CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Anonymous-Token",
	}))

	// --- Operasyonel Uçlar ---
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// --- Rota Grupları ---
	registerAuthRoutes(app)        // /auth rotaları
	registerPanelRoutes(app)       // /panel rotaları
	registerPublicRoutes(app, hub) // /w/:slug rotaları
	registerWSRoutes(app, hub)     // /ws/:slug canlı bağlantılar

	// --- 404 Handler ---
	// En sonda, eşleşmeyen tüm rotaları yakalar.
	app.Use(notFoundHandler)
}

func notFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "kaynak bulunamadı"})
}
