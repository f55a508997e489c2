package routes

import (
	public_handlers "dilek.link/handlers/public"
	"dilek.link/middlewares"
	"dilek.link/pkg/realtime"

	"github.com/gofiber/fiber/v2"
)

// registerPublicRoutes /w/:slug altındaki ziyaretçi rotalarını tanımlar.
// OptionalAuth: giriş yapılmışsa kimlik çözülür, yapılmamışsa istek
// anonim token ile devam eder.
func registerPublicRoutes(app *fiber.App, hub *realtime.Hub) {
	publicHandler := public_handlers.NewPublicWishlistHandler(hub)

	publicGroup := app.Group("/w")
	publicGroup.Use(middlewares.OptionalAuth())

	publicGroup.Get("/:slug", publicHandler.Show)                                    // GET /w/{slug}
	publicGroup.Post("/:slug/items/:itemID/reserve", publicHandler.Reserve)          // POST /w/{slug}/items/{itemID}/reserve
	publicGroup.Delete("/:slug/items/:itemID/reserve", publicHandler.Unreserve)      // DELETE /w/{slug}/items/{itemID}/reserve
	publicGroup.Post("/:slug/items/:itemID/contribute", publicHandler.Contribute)    // POST /w/{slug}/items/{itemID}/contribute
}
