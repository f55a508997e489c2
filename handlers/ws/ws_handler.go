package ws

import (
	"errors"
	"time"

	"dilek.link/configs/configslog"
	"dilek.link/pkg/realtime"
	"dilek.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// Tek bir yazmanın bekleyebileceği üst sınır. Tamponu dolu bir istemci bu
// süre sonunda hata alır ve hub tarafından düşürülür; süresiz bloklamaz.
const writeWait = 10 * time.Second

// timedConn her yazmadan önce süre sınırı koyan Viewer sarmalayıcısı.
type timedConn struct {
	*websocket.Conn
}

func (c timedConn) WriteMessage(messageType int, data []byte) error {
	_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.Conn.WriteMessage(messageType, data)
}

// WSHandler canlı izleyici bağlantıları (GET /ws/wishlist/:slug).
// Bağlantı tek yönlüdür: sunucu olay yollar, istemciden veri beklenmez.
type WSHandler struct {
	wishlistService services.IWishlistService
	hub             *realtime.Hub
}

// NewWSHandler yeni bir WSHandler örneği oluşturur.
func NewWSHandler(hub *realtime.Hub) *WSHandler {
	return &WSHandler{wishlistService: services.NewWishlistService(), hub: hub}
}

// Upgrade websocket el sıkışmasını doğrular ve slug'ı olmayan listeye
// bağlantı açılmasın diye önceden kontrol eder.
func (h *WSHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	slug := c.Params("slug")
	if _, err := h.wishlistService.GetWishlistBySlug(c.UserContext(), slug); err != nil {
		if errors.Is(err, services.ErrWishlistNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		configslog.Log.Error("WS Upgrade hatası", zap.String("slug", slug), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "bağlantı açılamadı"})
	}

	c.Locals("wsChannel", realtime.ChannelForWishlist(slug))
	return c.Next()
}

// Serve bağlantıyı hub'a kaydeder ve kopana kadar okur. Okuma döngüsü
// ping/pong ve close çerçevelerinin işlenmesi için gereklidir.
func (h *WSHandler) Serve() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		channel, _ := conn.Locals("wsChannel").(string)
		if channel == "" {
			_ = conn.Close()
			return
		}

		viewer := timedConn{conn}
		h.hub.Subscribe(channel, viewer)
		defer func() {
			h.hub.Unsubscribe(channel, viewer)
			_ = conn.Close()
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}
