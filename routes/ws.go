package routes

import (
	ws_handlers "dilek.link/handlers/ws"
	"dilek.link/pkg/realtime"

	"github.com/gofiber/fiber/v2"
)

// registerWSRoutes /ws/:slug canlı izleyici rotasını tanımlar.
func registerWSRoutes(app *fiber.App, hub *realtime.Hub) {
	wsHandler := ws_handlers.NewWSHandler(hub)

	app.Get("/ws/wishlist/:slug", wsHandler.Upgrade, wsHandler.Serve()) // GET /ws/wishlist/{slug}
}
