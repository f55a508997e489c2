package repositories

import (
	"context"
	"errors"

	"dilek.link/configs"
	"dilek.link/configs/configslog"
	"dilek.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IItemRepository hediye veritabanı işlemleri için arayüz.
type IItemRepository interface {
	Create(ctx context.Context, item *models.WishlistItem) error
	FindOwned(ctx context.Context, wishlistID, itemID, userID uint, forUpdate bool) (*models.WishlistItem, error)
	FindBySlugAndID(ctx context.Context, slug string, itemID uint, forUpdate bool) (*models.WishlistItem, error)
	Update(ctx context.Context, item *models.WishlistItem) error
	Delete(ctx context.Context, itemID uint) error
}

// ItemRepository IItemRepository arayüzünü uygular.
type ItemRepository struct {
	db *gorm.DB
}

// NewItemRepository yeni bir ItemRepository örneği oluşturur.
func NewItemRepository() IItemRepository {
	return &ItemRepository{db: configs.GetDB()}
}

// NewItemRepositoryTx transaction içinde çalışan repository oluşturur.
func NewItemRepositoryTx(tx *gorm.DB) IItemRepository {
	return &ItemRepository{db: tx}
}

func (r *ItemRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create yeni hediye kaydeder.
func (r *ItemRepository) Create(ctx context.Context, item *models.WishlistItem) error {
	if item == nil || item.WishlistID == 0 {
		return errors.New("geçersiz hediye verisi")
	}
	return r.getDB(ctx).Create(item).Error
}

// FindOwned hediyeyi, listesi verilen kullanıcıya aitse getirir.
// Sahiplik JOIN ile tek sorguda doğrulanır; aksi her durum ErrNotFound.
// forUpdate true ise hediye satırı kilitlenir; silme ile eşzamanlı katkının
// aynı satır üzerinde serileşmesi buna dayanır.
func (r *ItemRepository) FindOwned(ctx context.Context, wishlistID, itemID, userID uint, forUpdate bool) (*models.WishlistItem, error) {
	if wishlistID == 0 || itemID == 0 || userID == 0 {
		return nil, errors.New("geçersiz ID")
	}
	db := r.getDB(ctx)
	query := db.
		Joins("JOIN wishlists ON wishlists.id = wishlist_items.wishlist_id").
		Where("wishlist_items.id = ? AND wishlists.id = ? AND wishlists.user_id = ?", itemID, wishlistID, userID).
		Preload("Reservations").
		Preload("Contributions")
	if forUpdate && db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{
			Strength: "UPDATE",
			Table:    clause.Table{Name: "wishlist_items"},
		})
	}
	var item models.WishlistItem
	err := query.First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("ItemRepository.FindOwned: DB hatası", zap.Uint("itemID", itemID), zap.Error(err))
		return nil, err
	}
	return &item, nil
}

// FindBySlugAndID hediyeyi public anahtarla (liste slug'ı + hediye ID) bulur.
// forUpdate true ise hediye satırı transaction sonuna kadar kilitlenir;
// katkı toplam-tavanı kontrolü bu kilide dayanır. SQLite FOR UPDATE
// desteklemez, oradaki tek-yazarlı transaction'lar zaten serileştirir.
func (r *ItemRepository) FindBySlugAndID(ctx context.Context, slug string, itemID uint, forUpdate bool) (*models.WishlistItem, error) {
	if slug == "" || itemID == 0 {
		return nil, errors.New("geçersiz parametre")
	}
	db := r.getDB(ctx)
	query := db.
		Joins("JOIN wishlists ON wishlists.id = wishlist_items.wishlist_id").
		Where("wishlists.slug = ? AND wishlist_items.id = ?", slug, itemID)
	if forUpdate && db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{
			Strength: "UPDATE",
			Table:    clause.Table{Name: "wishlist_items"},
		})
	}
	var item models.WishlistItem
	if err := query.First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("ItemRepository.FindBySlugAndID: DB hatası",
			zap.String("slug", slug), zap.Uint("itemID", itemID), zap.Error(err))
		return nil, err
	}
	return &item, nil
}

// Update hediyeyi kaydeder.
func (r *ItemRepository) Update(ctx context.Context, item *models.WishlistItem) error {
	if item == nil || item.ID == 0 {
		return errors.New("güncellenecek hediye geçerli değil")
	}
	return r.getDB(ctx).Save(item).Error
}

// Delete hediyeyi kalıcı olarak siler.
func (r *ItemRepository) Delete(ctx context.Context, itemID uint) error {
	if itemID == 0 {
		return errors.New("geçersiz hediye ID")
	}
	result := r.getDB(ctx).Delete(&models.WishlistItem{}, itemID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ IItemRepository = (*ItemRepository)(nil)
