package presenter

import (
	"encoding/json"
	"testing"

	"dilek.link/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func itemFixture() models.WishlistItem {
	return models.WishlistItem{
		Name:  "Hediye",
		URL:   "https://example.com",
		Price: decimal.NewFromInt(100),
		Reservations: []models.Reservation{
			{ItemID: 1, ReserverKey: "ben@example.com", IsAnonymous: false},
		},
		Contributions: []models.Contribution{
			{ItemID: 1, ContributorKey: "ben@example.com", Amount: decimal.NewFromInt(30)},
			{ItemID: 1, ContributorKey: "baskasi", Amount: decimal.NewFromInt(20)},
		},
	}
}

func TestPublicItemByMeFields(t *testing.T) {
	item := itemFixture()

	mine := PublicItem(item, "ben@example.com")
	require.True(t, mine.Reserved)
	require.True(t, mine.ReservedByMe)
	require.True(t, mine.ContributedByMe.Equal(decimal.NewFromInt(30)))
	require.True(t, mine.TotalContributed.Equal(decimal.NewFromInt(50)))

	other := PublicItem(item, "ucuncu-kisi")
	require.True(t, other.Reserved)
	require.False(t, other.ReservedByMe)
	require.True(t, other.ContributedByMe.IsZero())

	// Boş anahtar hiçbir şeyle eşleşmez.
	anon := PublicItem(item, "")
	require.False(t, anon.ReservedByMe)
	require.True(t, anon.ContributedByMe.IsZero())
}

// Görünümler kim sorusunun cevabını asla taşımaz: ne rezerve edenin ne de
// katkı yapanların anahtarı serileştirilen çıktıda görünür.
func TestViewsNeverLeakIdentityKeys(t *testing.T) {
	item := itemFixture()

	for name, view := range map[string]interface{}{
		"owner":  OwnerItem(item),
		"public": PublicItem(item, "ucuncu-kisi"),
	} {
		raw, err := json.Marshal(view)
		require.NoError(t, err)
		require.NotContains(t, string(raw), "ben@example.com", "%s görünümü anahtar sızdırıyor", name)
		require.NotContains(t, string(raw), "baskasi", "%s görünümü anahtar sızdırıyor", name)
	}
}

func TestProgress(t *testing.T) {
	item := models.WishlistItem{Price: decimal.NewFromInt(200)}
	item.Contributions = []models.Contribution{{Amount: decimal.NewFromInt(50)}}
	require.InDelta(t, 0.25, OwnerItem(item).Progress, 1e-9)

	// Hedef fiyatı ezer: 50/50 = tam fonlanmış.
	target := decimal.NewFromInt(50)
	item.TargetAmount = &target
	require.InDelta(t, 1.0, OwnerItem(item).Progress, 1e-9)

	// Taşmış veri gelse bile oran 1'e kıstırılır.
	item.Contributions = append(item.Contributions, models.Contribution{Amount: decimal.NewFromInt(999)})
	require.InDelta(t, 1.0, OwnerItem(item).Progress, 1e-9)

	// Sıfır hedefte oran tanımsızdır, 0 gösterilir.
	zero := models.WishlistItem{Price: decimal.Zero}
	require.InDelta(t, 0.0, OwnerItem(zero).Progress, 1e-9)
}
