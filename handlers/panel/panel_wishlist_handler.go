package panel

import (
	"errors"

	"dilek.link/configs/configslog"
	"dilek.link/models"
	"dilek.link/pkg/presenter"
	"dilek.link/pkg/queryparams"
	"dilek.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelWishlistHandler liste sahibinin yönetim uçları. Tüm rotalar
// AuthRequired arkasındadır; userID locals'tan gelir.
type PanelWishlistHandler struct {
	wishlistService services.IWishlistService
}

// NewPanelWishlistHandler yeni bir PanelWishlistHandler örneği oluşturur.
func NewPanelWishlistHandler() *PanelWishlistHandler {
	return &PanelWishlistHandler{wishlistService: services.NewWishlistService()}
}

func currentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}

type createWishlistRequest struct {
	Name     string `json:"name"`
	Occasion string `json:"occasion"`
}

type wishlistSummary struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Occasion  string `json:"occasion"`
	Slug      string `json:"slug"`
	ItemCount int    `json:"item_count"`
}

type wishlistDetail struct {
	ID       uint                      `json:"id"`
	Name     string                    `json:"name"`
	Occasion string                    `json:"occasion"`
	Slug     string                    `json:"slug"`
	Items    []presenter.ItemOwnerView `json:"items"`
}

func toDetail(w *models.Wishlist) wishlistDetail {
	items := make([]presenter.ItemOwnerView, 0, len(w.Items))
	for _, it := range w.Items {
		items = append(items, presenter.OwnerItem(it))
	}
	return wishlistDetail{ID: w.ID, Name: w.Name, Occasion: w.Occasion, Slug: w.Slug, Items: items}
}

// ListWishlists (GET /panel/wishlists)
func (h *PanelWishlistHandler) ListWishlists(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz sorgu parametreleri"})
	}

	result, err := h.wishlistService.GetWishlistsForUser(c.UserContext(), currentUserID(c), params)
	if err != nil {
		configslog.Log.Error("ListWishlists hatası", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "listeler alınamadı"})
	}

	wishlists, _ := result.Data.([]models.Wishlist)
	summaries := make([]wishlistSummary, 0, len(wishlists))
	for _, w := range wishlists {
		summaries = append(summaries, wishlistSummary{
			ID: w.ID, Name: w.Name, Occasion: w.Occasion, Slug: w.Slug, ItemCount: len(w.Items),
		})
	}
	result.Data = summaries
	return c.JSON(result)
}

// CreateWishlist (POST /panel/wishlists)
func (h *PanelWishlistHandler) CreateWishlist(c *fiber.Ctx) error {
	var req createWishlistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}

	wishlist, err := h.wishlistService.CreateWishlist(c.UserContext(), currentUserID(c), req.Name, req.Occasion)
	if err != nil {
		if errors.Is(err, services.ErrWishlistInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		configslog.Log.Error("CreateWishlist hatası", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "liste oluşturulamadı"})
	}
	return c.Status(fiber.StatusCreated).JSON(toDetail(wishlist))
}

// GetWishlist (GET /panel/wishlists/:id)
func (h *PanelWishlistHandler) GetWishlist(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz liste ID"})
	}

	wishlist, err := h.wishlistService.GetWishlistByID(c.UserContext(), uint(id), currentUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrWishlistNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		configslog.Log.Error("GetWishlist hatası", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "liste alınamadı"})
	}
	return c.JSON(toDetail(wishlist))
}

// DeleteWishlist (DELETE /panel/wishlists/:id)
func (h *PanelWishlistHandler) DeleteWishlist(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz liste ID"})
	}

	if err := h.wishlistService.DeleteWishlist(c.UserContext(), uint(id), currentUserID(c)); err != nil {
		if errors.Is(err, services.ErrWishlistNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		configslog.Log.Error("DeleteWishlist hatası", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "liste silinemedi"})
	}
	return c.JSON(fiber.Map{"ok": true})
}

// AddItem (POST /panel/wishlists/:id/items)
func (h *PanelWishlistHandler) AddItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz liste ID"})
	}

	var input services.AddItemInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}

	item, err := h.wishlistService.AddItem(c.UserContext(), uint(id), currentUserID(c), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWishlistNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrWishlistInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			configslog.Log.Error("AddItem hatası", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "hediye eklenemedi"})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(presenter.OwnerItem(*item))
}

// UpdateItem (PATCH /panel/wishlists/:id/items/:itemID)
func (h *PanelWishlistHandler) UpdateItem(c *fiber.Ctx) error {
	id, err1 := c.ParamsInt("id")
	itemID, err2 := c.ParamsInt("itemID")
	if err1 != nil || err2 != nil || id <= 0 || itemID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz ID"})
	}

	var input services.UpdateItemInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz istek gövdesi"})
	}

	item, err := h.wishlistService.UpdateItem(c.UserContext(), uint(id), uint(itemID), currentUserID(c), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrItemNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrWishlistInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			configslog.Log.Error("UpdateItem hatası", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "hediye güncellenemedi"})
		}
	}
	return c.JSON(presenter.OwnerItem(*item))
}

// DeleteItem (DELETE /panel/wishlists/:id/items/:itemID)
// Katkısı olan hediye 400 ile reddedilir; para sessizce kaybolmaz.
func (h *PanelWishlistHandler) DeleteItem(c *fiber.Ctx) error {
	id, err1 := c.ParamsInt("id")
	itemID, err2 := c.ParamsInt("itemID")
	if err1 != nil || err2 != nil || id <= 0 || itemID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "geçersiz ID"})
	}

	if err := h.wishlistService.DeleteItem(c.UserContext(), uint(id), uint(itemID), currentUserID(c)); err != nil {
		switch {
		case errors.Is(err, services.ErrItemNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrItemHasContributions):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			configslog.Log.Error("DeleteItem hatası", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "hediye silinemedi"})
		}
	}
	return c.JSON(fiber.Map{"ok": true})
}
