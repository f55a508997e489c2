package repositories

import (
	"context"
	"errors"

	"dilek.link/configs"
	"dilek.link/configs/configslog"
	"dilek.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IReservationRepository rezervasyon veritabanı işlemleri için arayüz.
type IReservationRepository interface {
	Create(ctx context.Context, reservation *models.Reservation) error
	ExistsByItemID(ctx context.Context, itemID uint) (bool, error)
	DeleteByItemAndKey(ctx context.Context, itemID uint, reserverKey string) (bool, error)
	DeleteByItemID(ctx context.Context, itemID uint) error
}

// ReservationRepository IReservationRepository arayüzünü uygular.
type ReservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository yeni bir ReservationRepository örneği oluşturur.
func NewReservationRepository() IReservationRepository {
	return &ReservationRepository{db: configs.GetDB()}
}

// NewReservationRepositoryTx transaction içinde çalışan repository oluşturur.
func NewReservationRepositoryTx(tx *gorm.DB) IReservationRepository {
	return &ReservationRepository{db: tx}
}

func (r *ReservationRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create rezervasyon satırını ekler. item_id üzerindeki unique index
// son savunma hattıdır: ön kontrol ile insert arasındaki yarışta kaybeden
// taraf gorm.ErrDuplicatedKey alır, asla iki satır oluşmaz.
func (r *ReservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	if reservation == nil || reservation.ItemID == 0 || reservation.ReserverKey == "" {
		return errors.New("geçersiz rezervasyon verisi")
	}
	return r.getDB(ctx).Create(reservation).Error
}

// ExistsByItemID hediyede rezervasyon olup olmadığını söyler.
func (r *ReservationRepository) ExistsByItemID(ctx context.Context, itemID uint) (bool, error) {
	if itemID == 0 {
		return false, errors.New("geçersiz hediye ID")
	}
	var count int64
	err := r.getDB(ctx).Model(&models.Reservation{}).Where("item_id = ?", itemID).Count(&count).Error
	if err != nil {
		configslog.Log.Error("ReservationRepository.ExistsByItemID: DB hatası", zap.Uint("itemID", itemID), zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

// DeleteByItemAndKey rezervasyonu yalnızca anahtar eşleşiyorsa siler.
// "Rezervasyon yok" ile "başkasına ait" aynı sonucu (false) verir;
// kimlik sızdırılmaz.
func (r *ReservationRepository) DeleteByItemAndKey(ctx context.Context, itemID uint, reserverKey string) (bool, error) {
	if itemID == 0 || reserverKey == "" {
		return false, errors.New("geçersiz parametre")
	}
	result := r.getDB(ctx).
		Where("item_id = ? AND reserver_key = ?", itemID, reserverKey).
		Delete(&models.Reservation{})
	if result.Error != nil {
		configslog.Log.Error("ReservationRepository.DeleteByItemAndKey: DB hatası", zap.Uint("itemID", itemID), zap.Error(result.Error))
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteByItemID hediye silinirken rezervasyonunu temizler.
func (r *ReservationRepository) DeleteByItemID(ctx context.Context, itemID uint) error {
	if itemID == 0 {
		return errors.New("geçersiz hediye ID")
	}
	return r.getDB(ctx).Where("item_id = ?", itemID).Delete(&models.Reservation{}).Error
}

var _ IReservationRepository = (*ReservationRepository)(nil)
