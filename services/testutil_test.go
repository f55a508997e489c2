package services

import (
	"fmt"
	"strings"
	"testing"

	"dilek.link/configs/configsdatabase"
	"dilek.link/configs/configslog"
	"dilek.link/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB her test için izole bir in-memory sqlite açar ve global db
// örneğine takar. Tek bağlantı ile sınırlamak sqlite'ın tek-yazarlı
// doğasında eşzamanlı transaction'ların serileşmesini sağlar; "database is
// locked" hataları yerine bekleyip sırayla çalışırlar.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	configslog.InitLogger()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Wishlist{},
		&models.WishlistItem{},
		&models.Reservation{},
		&models.Contribution{},
	))

	configsdatabase.Set(db)
	t.Cleanup(func() {
		configsdatabase.Set(nil)
		_ = sqlDB.Close()
	})
	return db
}

// seedWishlist test sahibi, listesi ve tek hediyesiyle bir fikstür kurar.
// target nil ise hedef fiyattır.
func seedWishlist(t *testing.T, db *gorm.DB, price decimal.Decimal, target *decimal.Decimal) (*models.Wishlist, *models.WishlistItem) {
	t.Helper()

	user := models.User{Email: "sahip@example.com", PasswordHash: "x", Name: "Sahip"}
	require.NoError(t, db.Create(&user).Error)

	wishlist := models.Wishlist{UserID: user.ID, Name: "Test Listesi", Occasion: "Doğum Günü", Slug: "testliste0001"}
	require.NoError(t, db.Create(&wishlist).Error)

	item := models.WishlistItem{
		WishlistID:   wishlist.ID,
		Name:         "Test Hediyesi",
		URL:          "https://example.com/hediye",
		Price:        price,
		TargetAmount: target,
	}
	require.NoError(t, db.Create(&item).Error)

	return &wishlist, &item
}
