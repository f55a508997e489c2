package realtime

import (
	"encoding/json"
	"sync"

	"dilek.link/configs/configslog"
	"dilek.link/pkg/metrics"

	"go.uber.org/zap"
)

// Kanal başına canlı izleyici kayıt defteri. Kanal anahtarı "wishlist:<slug>".
// Mesaj geçmişi tutulmaz; sonradan bağlanan izleyici eski olayları almaz.

// Viewer tek bir canlı bağlantı. *websocket.Conn bu arayüzü doğrudan sağlar.
type Viewer interface {
	WriteMessage(messageType int, data []byte) error
}

// websocket.TextMessage ile aynı değer; hub'ın transport paketine
// bağımlı olmaması için burada sabitlenmiştir.
const textMessage = 1

// Her izleyicinin kuyruk kapasitesi. Kuyruğu dolduran izleyici olayları
// tüketmiyor demektir; düşürülür.
const sendQueueSize = 16

// ChannelForWishlist slug'tan kanal anahtarı üretir.
func ChannelForWishlist(slug string) string {
	return "wishlist:" + slug
}

// Event commit edilmiş bir değişikliğin izleyicilere duyurulan hali.
type Event struct {
	Type   string `json:"type"`
	ItemID uint   `json:"itemId"`
}

// subscription bir izleyicinin kuyruğu. Bağlantıya yazan tek goroutine
// pump'tır; hub kilidi hiçbir zaman bir socket yazması beklemez.
type subscription struct {
	viewer Viewer
	send   chan []byte
}

// pump kuyruğu bağlantıya boşaltır. Yazma hatasında izleyici kanaldan
// çıkarılır; kuyruk kapatılınca kalanlar atılıp goroutine biter.
func (s *subscription) pump(h *Hub, channel string) {
	for payload := range s.send {
		if err := s.viewer.WriteMessage(textMessage, payload); err != nil {
			h.Unsubscribe(channel, s.viewer)
			for range s.send {
			}
			return
		}
	}
}

// Hub kanal -> izleyici kümesi eşlemesi. Kilit yalnızca kayıt defterini ve
// kuyruklara bloklamayan gönderimi korur; socket yazmaları kilidin dışında,
// izleyici başına tek pump goroutine'inde yapılır.
type Hub struct {
	mu       sync.Mutex
	channels map[string]map[Viewer]*subscription
}

// NewHub boş bir hub oluşturur.
func NewHub() *Hub {
	return &Hub{channels: make(map[string]map[Viewer]*subscription)}
}

// Subscribe izleyiciyi kanala kaydeder ve pump'ını başlatır.
// Aynı izleyicinin tekrar kaydı no-op.
func (h *Hub) Subscribe(channel string, v Viewer) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.channels[channel]
	if !ok {
		set = make(map[Viewer]*subscription)
		h.channels[channel] = set
	}
	if _, exists := set[v]; exists {
		return
	}
	sub := &subscription{viewer: v, send: make(chan []byte, sendQueueSize)}
	set[v] = sub
	metrics.LiveViewers.Inc()
	go sub.pump(h, channel)
}

// Unsubscribe izleyiciyi kanaldan çıkarır; küme boşalırsa kanal silinir.
func (h *Hub) Unsubscribe(channel string, v Viewer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(channel, v)
}

func (h *Hub) removeLocked(channel string, v Viewer) {
	set, ok := h.channels[channel]
	if !ok {
		return
	}
	sub, exists := set[v]
	if !exists {
		return
	}
	delete(set, v)
	close(sub.send)
	metrics.LiveViewers.Dec()
	if len(set) == 0 {
		delete(h.channels, channel)
	}
}

// Publish olayı kanaldaki tüm izleyicilerin kuyruklarına bırakır.
// Best-effort ve asla bloklamaz: kuyruğu dolu izleyici düşürülür, takılı
// tek bir socket diğer kanalları da bu çağrıyı da bekletemez.
func (h *Hub) Publish(channel string, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		configslog.Log.Error("Hub.Publish: olay serileştirilemedi", zap.Error(err))
		return
	}

	h.mu.Lock()
	set, ok := h.channels[channel]
	if !ok {
		h.mu.Unlock()
		return
	}
	var stalled []Viewer
	for v, sub := range set {
		select {
		case sub.send <- payload:
		default:
			stalled = append(stalled, v)
		}
	}
	for _, v := range stalled {
		h.removeLocked(channel, v)
	}
	h.mu.Unlock()

	if len(stalled) > 0 {
		configslog.SLog.Debugf("Hub.Publish: %d izleyici kuyruğu dolu, düşürüldü (kanal: %s)", len(stalled), channel)
	}
}

// ViewerCount kanaldaki kayıtlı izleyici sayısı.
func (h *Hub) ViewerCount(channel string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.channels[channel])
}
