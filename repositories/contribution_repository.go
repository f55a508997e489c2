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

// IContributionRepository katkı veritabanı işlemleri için arayüz.
type IContributionRepository interface {
	Create(ctx context.Context, contribution *models.Contribution) error
	FindByItemID(ctx context.Context, itemID uint) ([]models.Contribution, error)
	CountByItemID(ctx context.Context, itemID uint) (int64, error)
	DeleteByItemID(ctx context.Context, itemID uint) error
}

// ContributionRepository IContributionRepository arayüzünü uygular.
type ContributionRepository struct {
	db *gorm.DB
}

// NewContributionRepository yeni bir ContributionRepository örneği oluşturur.
func NewContributionRepository() IContributionRepository {
	return &ContributionRepository{db: configs.GetDB()}
}

// NewContributionRepositoryTx transaction içinde çalışan repository oluşturur.
func NewContributionRepositoryTx(tx *gorm.DB) IContributionRepository {
	return &ContributionRepository{db: tx}
}

func (r *ContributionRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create katkı satırını ekler.
func (r *ContributionRepository) Create(ctx context.Context, contribution *models.Contribution) error {
	if contribution == nil || contribution.ItemID == 0 || contribution.ContributorKey == "" {
		return errors.New("geçersiz katkı verisi")
	}
	return r.getDB(ctx).Create(contribution).Error
}

// FindByItemID hediyenin tüm katkılarını getirir. Toplam, kuruş hatasına
// düşmemek için SQL SUM yerine decimal ile Go tarafında alınır.
func (r *ContributionRepository) FindByItemID(ctx context.Context, itemID uint) ([]models.Contribution, error) {
	if itemID == 0 {
		return nil, errors.New("geçersiz hediye ID")
	}
	var contributions []models.Contribution
	err := r.getDB(ctx).
		Where("item_id = ?", itemID).
		Order("created_at asc").
		Find(&contributions).Error
	if err != nil {
		configslog.Log.Error("ContributionRepository.FindByItemID: DB hatası", zap.Uint("itemID", itemID), zap.Error(err))
		return nil, err
	}
	return contributions, nil
}

// CountByItemID hediyenin katkı sayısı (silme kuralı için).
func (r *ContributionRepository) CountByItemID(ctx context.Context, itemID uint) (int64, error) {
	if itemID == 0 {
		return 0, errors.New("geçersiz hediye ID")
	}
	var count int64
	err := r.getDB(ctx).Model(&models.Contribution{}).Where("item_id = ?", itemID).Count(&count).Error
	return count, err
}

// DeleteByItemID hediye silinirken katkılarını temizler.
// Katkısı olan hediye zaten silinemez; bu yalnızca liste silme kaskadında çalışır.
func (r *ContributionRepository) DeleteByItemID(ctx context.Context, itemID uint) error {
	if itemID == 0 {
		return errors.New("geçersiz hediye ID")
	}
	return r.getDB(ctx).Where("item_id = ?", itemID).Delete(&models.Contribution{}).Error
}

var _ IContributionRepository = (*ContributionRepository)(nil)
