package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Rezervasyon ve katkı işlemlerinin sonuç sayaçları ile canlı izleyici sayısı.
// /metrics ucundan Prometheus formatında sunulur.
var (
	ReservationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dilek_reservations_total",
		Help: "Başarılı rezervasyon sayısı.",
	})

	ReservationConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dilek_reservation_conflicts_total",
		Help: "Zaten rezerve edilmiş hediyeye yapılan denemeler (yarış kayıpları dahil).",
	})

	ContributionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dilek_contributions_total",
		Help: "Kabul edilen katkı sayısı.",
	})

	ContributionsRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dilek_contributions_rejected_total",
		Help: "Reddedilen katkılar, sebebe göre.",
	}, []string{"reason"})

	LiveViewers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dilek_live_viewers",
		Help: "Websocket üzerinden bağlı izleyici sayısı.",
	})
)
