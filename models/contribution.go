package models

import "github.com/shopspring/decimal"

// Contribution bir hediyeye yapılan parasal katkı. Aynı hediyeye birden çok
// katkı olabilir; toplamın hedefi aşmaması şema ile değil, katkı servisindeki
// kilitli okuma-sonra-yazma ile korunur.
type Contribution struct {
	BaseModel
	ItemID         uint            `gorm:"index;not null" json:"item_id"`
	Item           WishlistItem    `gorm:"foreignKey:ItemID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ContributorKey string          `gorm:"type:varchar(255);not null" json:"-"`
	IsAnonymous    bool            `gorm:"default:true" json:"is_anonymous"`
	Amount         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
}
