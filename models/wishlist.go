package models

import "github.com/shopspring/decimal"

// Wishlist bir kullanıcının hediye listesi. Slug public yüzeydeki
// tahmin edilemez arama anahtarıdır (iç ID asla dışarı sızmaz).
type Wishlist struct {
	BaseModel
	UserID   uint   `gorm:"index;not null" json:"-"`
	User     User   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Occasion string `gorm:"type:varchar(255);not null" json:"occasion"`
	Slug     string `gorm:"type:varchar(64);uniqueIndex;not null" json:"slug"`

	Items []WishlistItem `gorm:"foreignKey:WishlistID" json:"items,omitempty"`
}

// WishlistItem listedeki tek bir hediye. TargetAmount boş ya da sıfırsa
// fonlama hedefi fiyattır.
type WishlistItem struct {
	BaseModel
	WishlistID   uint             `gorm:"index;not null" json:"-"`
	Wishlist     Wishlist         `gorm:"foreignKey:WishlistID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Name         string           `gorm:"type:varchar(512);not null" json:"name"`
	URL          string           `gorm:"type:varchar(2048);not null" json:"url"`
	Price        decimal.Decimal  `gorm:"type:numeric(12,2);not null;default:0" json:"price"`
	ImageURL     *string          `gorm:"type:varchar(2048)" json:"image_url"`
	TargetAmount *decimal.Decimal `gorm:"type:numeric(12,2)" json:"target_amount"`

	Reservations  []Reservation  `gorm:"foreignKey:ItemID" json:"-"`
	Contributions []Contribution `gorm:"foreignKey:ItemID" json:"-"`
}

// EffectiveTarget hediyenin fonlama tavanı: pozitif bir TargetAmount
// varsa o, yoksa fiyat.
func (i WishlistItem) EffectiveTarget() decimal.Decimal {
	if i.TargetAmount != nil && i.TargetAmount.IsPositive() {
		return *i.TargetAmount
	}
	return i.Price
}

// TotalContributed yüklenmiş katkıların toplamı.
func (i WishlistItem) TotalContributed() decimal.Decimal {
	total := decimal.Zero
	for _, c := range i.Contributions {
		total = total.Add(c.Amount)
	}
	return total
}
