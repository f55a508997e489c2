package models

// User kayıtlı bir kullanıcı. Identity key olarak e-posta adresi kullanılır.
type User struct {
	BaseModel
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(255)" json:"-"`
	Name         string `gorm:"type:varchar(255)" json:"name"`

	// İlişkiler: kullanıcı silinirse listeleri de silinir.
	Wishlists []Wishlist `gorm:"foreignKey:UserID" json:"-"`
}
