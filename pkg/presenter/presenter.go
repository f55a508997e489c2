package presenter

import (
	"dilek.link/models"

	"github.com/shopspring/decimal"
)

// Saklanan varlıkları sahibe ve public ziyaretçiye gösterilen görünümlere
// çevirir. Hiçbir görünüm rezerve eden/katkı yapan kimliğini açığa vurmaz;
// katkılar kişi bazında asla kırılmaz.

// ItemOwnerView liste sahibinin gördüğü hediye.
type ItemOwnerView struct {
	ID               uint             `json:"id"`
	Name             string           `json:"name"`
	URL              string           `json:"url"`
	Price            decimal.Decimal  `json:"price"`
	ImageURL         *string          `json:"image_url"`
	TargetAmount     *decimal.Decimal `json:"target_amount"`
	Reserved         bool             `json:"reserved"`
	TotalContributed decimal.Decimal  `json:"total_contributed"`
	Progress         float64          `json:"progress"`
}

// ItemPublicView ziyaretçinin gördüğü hediye; "benim mi?" alanları
// çağıranın kimlik anahtarına göre hesaplanır.
type ItemPublicView struct {
	ID               uint             `json:"id"`
	Name             string           `json:"name"`
	URL              string           `json:"url"`
	Price            decimal.Decimal  `json:"price"`
	ImageURL         *string          `json:"image_url"`
	TargetAmount     *decimal.Decimal `json:"target_amount"`
	Reserved         bool             `json:"reserved"`
	ReservedByMe     bool             `json:"reserved_by_me"`
	TotalContributed decimal.Decimal  `json:"total_contributed"`
	ContributedByMe  decimal.Decimal  `json:"contributed_by_me"`
	Progress         float64          `json:"progress"`
}

// OwnerItem hediyeyi sahip görünümüne çevirir. Reservations/Contributions
// ilişkilerinin yüklenmiş olması beklenir.
func OwnerItem(item models.WishlistItem) ItemOwnerView {
	total := item.TotalContributed()
	return ItemOwnerView{
		ID:               item.ID,
		Name:             item.Name,
		URL:              item.URL,
		Price:            item.Price,
		ImageURL:         item.ImageURL,
		TargetAmount:     item.TargetAmount,
		Reserved:         len(item.Reservations) > 0,
		TotalContributed: total,
		Progress:         progress(total, item.EffectiveTarget()),
	}
}

// PublicItem hediyeyi çağıranın anahtarına göre public görünüme çevirir.
func PublicItem(item models.WishlistItem, callerKey string) ItemPublicView {
	total := item.TotalContributed()

	reservedByMe := false
	if callerKey != "" {
		for _, r := range item.Reservations {
			if r.ReserverKey == callerKey {
				reservedByMe = true
				break
			}
		}
	}

	contributedByMe := decimal.Zero
	if callerKey != "" {
		for _, c := range item.Contributions {
			if c.ContributorKey == callerKey {
				contributedByMe = contributedByMe.Add(c.Amount)
			}
		}
	}

	return ItemPublicView{
		ID:               item.ID,
		Name:             item.Name,
		URL:              item.URL,
		Price:            item.Price,
		ImageURL:         item.ImageURL,
		TargetAmount:     item.TargetAmount,
		Reserved:         len(item.Reservations) > 0,
		ReservedByMe:     reservedByMe,
		TotalContributed: total,
		ContributedByMe:  contributedByMe,
		Progress:         progress(total, item.EffectiveTarget()),
	}
}

// progress [0,1] aralığına kıstırılmış fonlama oranı.
func progress(total, target decimal.Decimal) float64 {
	if !target.IsPositive() {
		return 0
	}
	p, _ := total.Div(target).Float64()
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}
