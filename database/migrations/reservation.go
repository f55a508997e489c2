package migrations

import (
	"dilek.link/configs/configslog"
	"dilek.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Reservations tablosunun item_id üzerindeki benzersiz indeksi yarış
// durumunda son savunma hattıdır; AutoMigrate bunu model etiketinden kurar.
func MigrateReservationsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating reservations table...")
	err := db.AutoMigrate(&models.Reservation{})
	if err != nil {
		configslog.Log.Error("Failed to migrate reservations table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Reservations table migrated successfully")
	return nil
}
