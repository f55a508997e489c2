package models

import "time"

// BaseModel tüm tablolar için ortak alanlar.
// Rezervasyon ve katkı kayıtları kalıcı olarak silindiği için
// soft delete kullanılmaz.
type BaseModel struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
