package routes

import (
	panel_handlers "dilek.link/handlers/panel"
	"dilek.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerPanelRoutes /panel altındaki rotaları ve middleware'leri tanımlar.
// Sadece giriş yapmış liste sahiplerinin erişimine izin verilir.
func registerPanelRoutes(app *fiber.App) {
	wishlistHandler := panel_handlers.NewPanelWishlistHandler()

	panelGroup := app.Group("/panel")
	panelGroup.Use(middlewares.AuthRequired())

	// --- Kullanıcının Kendi Listeleri ---
	panelGroup.Get("/wishlists", wishlistHandler.ListWishlists)          // GET /panel/wishlists
	panelGroup.Post("/wishlists", wishlistHandler.CreateWishlist)        // POST /panel/wishlists
	panelGroup.Get("/wishlists/:id", wishlistHandler.GetWishlist)        // GET /panel/wishlists/{id}
	panelGroup.Delete("/wishlists/:id", wishlistHandler.DeleteWishlist)  // DELETE /panel/wishlists/{id}

	// --- Liste Hediyeleri ---
	panelGroup.Post("/wishlists/:id/items", wishlistHandler.AddItem)                   // POST /panel/wishlists/{id}/items
	panelGroup.Patch("/wishlists/:id/items/:itemID", wishlistHandler.UpdateItem)       // PATCH /panel/wishlists/{id}/items/{itemID}
	panelGroup.Delete("/wishlists/:id/items/:itemID", wishlistHandler.DeleteItem)      // DELETE /panel/wishlists/{id}/items/{itemID}
}
