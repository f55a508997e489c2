package repositories

import (
	"context"
	"errors"

	"dilek.link/configs"
	"dilek.link/configs/configslog"
	"dilek.link/models"
	"dilek.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IWishlistRepository dilek listesi veritabanı işlemleri için arayüz.
type IWishlistRepository interface {
	Create(ctx context.Context, wishlist *models.Wishlist) error
	FindByID(ctx context.Context, id uint) (*models.Wishlist, error)
	FindByIDAndUser(ctx context.Context, id uint, userID uint) (*models.Wishlist, error)
	FindBySlug(ctx context.Context, slug string) (*models.Wishlist, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	FindAllByUserIDPaginated(ctx context.Context, userID uint, params queryparams.ListParams) ([]models.Wishlist, int64, error)
	Delete(ctx context.Context, wishlist *models.Wishlist) error
	CountByUserID(ctx context.Context, userID uint) (int64, error)
}

// WishlistRepository IWishlistRepository arayüzünü uygular.
type WishlistRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.Wishlist]
}

// NewWishlistRepository yeni bir WishlistRepository örneği oluşturur.
func NewWishlistRepository() IWishlistRepository {
	return newWishlistRepository(configs.GetDB())
}

// NewWishlistRepositoryTx transaction içinde çalışan repository oluşturur.
func NewWishlistRepositoryTx(tx *gorm.DB) IWishlistRepository {
	return newWishlistRepository(tx)
}

func newWishlistRepository(db *gorm.DB) *WishlistRepository {
	base := NewBaseRepository[models.Wishlist](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "name", "occasion"})
	return &WishlistRepository{db: db, base: base}
}

func (r *WishlistRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create yeni bir dilek listesi oluşturur. Slug çakışması ErrDuplicatedKey döner.
func (r *WishlistRepository) Create(ctx context.Context, wishlist *models.Wishlist) error {
	if wishlist == nil || wishlist.UserID == 0 || wishlist.Slug == "" {
		return errors.New("geçersiz dilek listesi verisi")
	}
	return r.getDB(ctx).Create(wishlist).Error
}

// FindByID listeyi tüm hediyeleri ve onların rezervasyon/katkılarıyla getirir.
func (r *WishlistRepository) FindByID(ctx context.Context, id uint) (*models.Wishlist, error) {
	if id == 0 {
		return nil, errors.New("geçersiz Wishlist ID")
	}
	var wishlist models.Wishlist
	err := r.getDB(ctx).
		Preload("Items.Reservations").
		Preload("Items.Contributions").
		Preload("Items").
		First(&wishlist, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("WishlistRepository.FindByID: DB hatası", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &wishlist, nil
}

// FindByIDAndUser listeyi yalnızca sahibi için getirir.
// Başkasının listesi de, olmayan liste de aynı ErrNotFound'dur.
func (r *WishlistRepository) FindByIDAndUser(ctx context.Context, id uint, userID uint) (*models.Wishlist, error) {
	if id == 0 || userID == 0 {
		return nil, errors.New("geçersiz ID")
	}
	var wishlist models.Wishlist
	err := r.getDB(ctx).
		Preload("Items.Reservations").
		Preload("Items.Contributions").
		Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).
		First(&wishlist).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("WishlistRepository.FindByIDAndUser: DB hatası", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &wishlist, nil
}

// FindBySlug public erişim için listeyi slug ile getirir.
func (r *WishlistRepository) FindBySlug(ctx context.Context, slug string) (*models.Wishlist, error) {
	if slug == "" {
		return nil, errors.New("geçersiz slug")
	}
	var wishlist models.Wishlist
	err := r.getDB(ctx).
		Preload("Items.Reservations").
		Preload("Items.Contributions").
		Preload("Items").
		Where("slug = ?", slug).
		First(&wishlist).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("WishlistRepository.FindBySlug: DB hatası", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}
	return &wishlist, nil
}

// SlugExists slug üretiminde çakışma kontrolü için.
func (r *WishlistRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Wishlist{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// FindAllByUserIDPaginated kullanıcının listelerini sayfalayarak getirir.
func (r *WishlistRepository) FindAllByUserIDPaginated(ctx context.Context, userID uint, params queryparams.ListParams) ([]models.Wishlist, int64, error) {
	if userID == 0 {
		return nil, 0, errors.New("geçersiz User ID")
	}
	wishlists, totalCount, err := r.base.FindAllPaginated(ctx, params, "user_id = ?", userID)
	if err != nil {
		return nil, 0, err
	}
	if len(wishlists) == 0 {
		return wishlists, totalCount, nil
	}

	// Liste kartlarında hediye sayısı göstermek için Items yüklenir.
	ids := make([]uint, len(wishlists))
	for i, w := range wishlists {
		ids[i] = w.ID
	}
	var items []models.WishlistItem
	if err := r.getDB(ctx).Where("wishlist_id IN ?", ids).Find(&items).Error; err != nil {
		configslog.Log.Error("WishlistRepository.FindAllByUserIDPaginated: item yükleme hatası", zap.Error(err))
		return nil, totalCount, err
	}
	byList := make(map[uint][]models.WishlistItem)
	for _, it := range items {
		byList[it.WishlistID] = append(byList[it.WishlistID], it)
	}
	for i := range wishlists {
		wishlists[i].Items = byList[wishlists[i].ID]
	}
	return wishlists, totalCount, nil
}

// Delete listeyi kalıcı olarak siler. Hediye/rezervasyon/katkı temizliği
// servis transaction'ında yapılır.
func (r *WishlistRepository) Delete(ctx context.Context, wishlist *models.Wishlist) error {
	if wishlist == nil || wishlist.ID == 0 {
		return errors.New("silinecek liste geçerli değil")
	}
	result := r.getDB(ctx).Delete(&models.Wishlist{}, wishlist.ID)
	if result.Error != nil {
		configslog.Log.Error("WishlistRepository.Delete: DB hatası", zap.Uint("id", wishlist.ID), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByUserID kullanıcının liste sayısı.
func (r *WishlistRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Wishlist{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

var _ IWishlistRepository = (*WishlistRepository)(nil)
