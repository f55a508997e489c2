package seeders

import (
	"testing"

	"dilek.link/configs/configslog"
	"dilek.link/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestSeedDemoData(t *testing.T) {
	configslog.InitLogger()

	db, err := gorm.Open(sqlite.Open("file:TestSeedDemoData?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Wishlist{}, &models.WishlistItem{},
		&models.Reservation{}, &models.Contribution{},
	))

	require.NoError(t, SeedDemoData(db))

	var user models.User
	require.NoError(t, db.Where("email = ?", demoUserEmail).First(&user).Error)

	var wishlist models.Wishlist
	require.NoError(t, db.Preload("Items").Where("user_id = ?", user.ID).First(&wishlist).Error)
	require.Len(t, wishlist.Items, 3)

	// Örnek etkinlik de ekilmiş olmalı: anonim rezervasyon ve katkı.
	var reservation models.Reservation
	require.NoError(t, db.First(&reservation).Error)
	require.True(t, reservation.IsAnonymous)
	require.NotEmpty(t, reservation.ReserverKey)

	var contribution models.Contribution
	require.NoError(t, db.First(&contribution).Error)
	require.True(t, contribution.IsAnonymous)
	require.NotEmpty(t, contribution.ContributorKey)

	var funded models.WishlistItem
	require.NoError(t, db.First(&funded, contribution.ItemID).Error)
	require.True(t, contribution.Amount.IsPositive())
	require.False(t, contribution.Amount.GreaterThan(funded.EffectiveTarget()))

	// İkinci çalıştırma hiçbir şeyi çoğaltmaz.
	require.NoError(t, SeedDemoData(db))
	var userCount, reservationCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Reservation{}).Count(&reservationCount).Error)
	require.EqualValues(t, 1, userCount)
	require.EqualValues(t, 1, reservationCount)
}
