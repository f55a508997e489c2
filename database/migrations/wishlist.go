package migrations

import (
	"dilek.link/configs/configslog"
	"dilek.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateWishlistsTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating wishlists tables...")
	err := db.AutoMigrate(&models.Wishlist{}, &models.WishlistItem{})
	if err != nil {
		configslog.Log.Error("Failed to migrate wishlists tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Wishlists tables migrated successfully")
	return nil
}
