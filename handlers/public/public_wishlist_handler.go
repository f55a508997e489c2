package public

import (
	"errors"

	"dilek.link/configs/configslog"
	"dilek.link/pkg/identity"
	"dilek.link/pkg/presenter"
	"dilek.link/pkg/realtime"
	"dilek.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PublicWishlistHandler slug üzerinden erişilen ziyaretçi uçları.
// Rotalar OptionalAuth arkasındadır: giriş yapılmışsa kimlik e-postadır,
// yoksa istemcinin anonim token'ı kullanılır.
type PublicWishlistHandler struct {
	wishlistService     services.IWishlistService
	reservationService  services.IReservationService
	contributionService services.IContributionService
	hub                 *realtime.Hub
}

// NewPublicWishlistHandler yeni bir PublicWishlistHandler örneği oluşturur.
func NewPublicWishlistHandler(hub *realtime.Hub) *PublicWishlistHandler {
	return &PublicWishlistHandler{
		wishlistService:     services.NewWishlistService(),
		reservationService:  services.NewReservationService(),
		contributionService: services.NewContributionService(),
		hub:                 hub,
	}
}

// callerIdentity isteğin kimliğini çözer: önce bearer (locals), sonra
// anonim token (gövde > header > query).
func callerIdentity(c *fiber.Ctx, bodyToken string) identity.Identity {
	if email, ok := c.Locals("userEmail").(string); ok && email != "" {
		userID, _ := c.Locals("userID").(uint)
		return identity.Registered(userID, email)
	}
	token := bodyToken
	if token == "" {
		token = c.Get("X-Anonymous-Token")
	}
	if token == "" {
		token = c.Query("anonymous_token")
	}
	return identity.Anonymous(token)
}

type publicWishlistResponse struct {
	Name     string                     `json:"name"`
	Occasion string                     `json:"occasion"`
	Slug     string                     `json:"slug"`
	Items    []presenter.ItemPublicView `json:"items"`
}

type reserveRequest struct {
	AnonymousToken string `json:"anonymous_token"`
}

type contributeRequest struct {
	Amount         decimal.Decimal `json:"amount"`
	AnonymousToken string          `json:"anonymous_token"`
}

// Show (GET /w/:slug) listeyi ziyaretçi görünümüyle döndürür.
func (h *PublicWishlistHandler) Show(c *fiber.Ctx) error {
	wishlist, err := h.wishlistService.GetWishlistBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		if errors.Is(err, services.ErrWishlistNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		configslog.Log.Error("Public Show hatası", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "liste yüklenemedi"})
	}

	callerKey := callerIdentity(c, "").Key()
	items := make([]presenter.ItemPublicView, 0, len(wishlist.Items))
	for _, it := range wishlist.Items {
		items = append(items, presenter.PublicItem(it, callerKey))
	}
	return c.JSON(publicWishlistResponse{
		Name:     wishlist.Name,
		Occasion: wishlist.Occasion,
		Slug:     wishlist.Slug,
		Items:    items,
	})
}

// Reserve (POST /w/:slug/items/:itemID/reserve)
// "Zaten rezerve" public yüzeye 404 olarak yansır: rezervasyonun varlığı da
// kimliği de dışarı sızdırılmaz.
func (h *PublicWishlistHandler) Reserve(c *fiber.Ctx) error {
	slug := c.Params("slug")
	itemID, err := c.ParamsInt("itemID")
	if err != nil || itemID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz hediye ID"})
	}

	var req reserveRequest
	_ = c.BodyParser(&req) // gövde opsiyonel, token header'dan da gelebilir

	caller := callerIdentity(c, req.AnonymousToken)
	if !caller.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "anonim token veya giriş gerekli"})
	}

	item, err := h.reservationService.Reserve(c.UserContext(), slug, uint(itemID), caller)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReservationItemNotFound), errors.Is(err, services.ErrReservationExists):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "hediye bulunamadı veya rezerve edilmiş"})
		case errors.Is(err, services.ErrReservationInvalidKey):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			configslog.Log.Error("Reserve hatası", zap.String("slug", slug), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "rezervasyon yapılamadı"})
		}
	}

	h.hub.Publish(realtime.ChannelForWishlist(slug), realtime.Event{Type: "reservation", ItemID: item.ID})
	return c.JSON(fiber.Map{"ok": true})
}

// Unreserve (DELETE /w/:slug/items/:itemID/reserve)
// Yalnızca rezervasyonun sahibi kaldırabilir; aksi her durum 404.
func (h *PublicWishlistHandler) Unreserve(c *fiber.Ctx) error {
	slug := c.Params("slug")
	itemID, err := c.ParamsInt("itemID")
	if err != nil || itemID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz hediye ID"})
	}

	var req reserveRequest
	_ = c.BodyParser(&req)

	caller := callerIdentity(c, req.AnonymousToken)
	if !caller.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "anonim token veya giriş gerekli"})
	}

	removed, err := h.reservationService.Unreserve(c.UserContext(), slug, uint(itemID), caller)
	if err != nil {
		if errors.Is(err, services.ErrReservationInvalidKey) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		configslog.Log.Error("Unreserve hatası", zap.String("slug", slug), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "rezervasyon kaldırılamadı"})
	}
	if !removed {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "rezervasyon bulunamadı"})
	}

	h.hub.Publish(realtime.ChannelForWishlist(slug), realtime.Event{Type: "unreserve", ItemID: uint(itemID)})
	return c.JSON(fiber.Map{"ok": true})
}

// Contribute (POST /w/:slug/items/:itemID/contribute)
func (h *PublicWishlistHandler) Contribute(c *fiber.Ctx) error {
	slug := c.Params("slug")
	itemID, err := c.ParamsInt("itemID")
	if err != nil || itemID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz hediye ID"})
	}

	var req contributeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}

	caller := callerIdentity(c, req.AnonymousToken)
	if !caller.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "anonim token veya giriş gerekli"})
	}

	item, err := h.contributionService.Contribute(c.UserContext(), slug, uint(itemID), caller, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrContributionItemNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrContributionInvalidAmount),
			errors.Is(err, services.ErrContributionExceedsTarget),
			errors.Is(err, services.ErrContributionInvalidKey):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			configslog.Log.Error("Contribute hatası", zap.String("slug", slug), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "katkı yapılamadı"})
		}
	}

	h.hub.Publish(realtime.ChannelForWishlist(slug), realtime.Event{Type: "contribution", ItemID: item.ID})
	return c.JSON(fiber.Map{"ok": true})
}
