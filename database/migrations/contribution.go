package migrations

import (
	"dilek.link/configs/configslog"
	"dilek.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateContributionsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating contributions table...")
	err := db.AutoMigrate(&models.Contribution{})
	if err != nil {
		configslog.Log.Error("Failed to migrate contributions table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Contributions table migrated successfully")
	return nil
}
