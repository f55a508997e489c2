package models

// Reservation bir hediyenin "ben alıyorum" kaydı.
// ItemID üzerindeki unique index temel iş kuralıdır: bir hediyeyi aynı anda
// en fazla bir kişi rezerve edebilir. Yarış durumunda insert'lerden yalnızca
// biri kazanır, kaybeden constraint hatası alır.
type Reservation struct {
	BaseModel
	ItemID      uint         `gorm:"uniqueIndex;not null" json:"item_id"`
	Item        WishlistItem `gorm:"foreignKey:ItemID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ReserverKey string       `gorm:"type:varchar(255);not null" json:"-"`
	IsAnonymous bool         `gorm:"default:true" json:"is_anonymous"`
}
