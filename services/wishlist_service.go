package services

import (
	"context"
	"errors"
	"fmt"

	"dilek.link/configs"
	"dilek.link/configs/configslog"
	"dilek.link/models"
	"dilek.link/pkg/queryparams"
	"dilek.link/pkg/slugkey"
	"dilek.link/repositories"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// WishlistServiceError özel servis hataları
type WishlistServiceError string

func (e WishlistServiceError) Error() string { return string(e) }

const (
	ErrWishlistNotFound     WishlistServiceError = "dilek listesi bulunamadı"
	ErrWishlistInvalidInput WishlistServiceError = "geçersiz girdi verisi"
	ErrItemNotFound         WishlistServiceError = "hediye bulunamadı"
	ErrItemHasContributions WishlistServiceError = "katkı yapılmış hediye silinemez"
	ErrSlugGeneration       WishlistServiceError = "benzersiz slug üretilemedi"
)

// Slug çakışmasında yeniden deneme sayısı. 36^12 uzayında çakışma
// pratikte görülmez; döngü yalnızca teorik köşe için var.
const slugMaxAttempts = 5

// AddItemInput yeni hediye girdisi.
type AddItemInput struct {
	Name         string           `json:"name"`
	URL          string           `json:"url"`
	Price        decimal.Decimal  `json:"price"`
	ImageURL     *string          `json:"image_url"`
	TargetAmount *decimal.Decimal `json:"target_amount"`
}

// UpdateItemInput kısmi hediye güncellemesi; nil alanlar dokunulmaz bırakılır.
type UpdateItemInput struct {
	Name         *string          `json:"name"`
	URL          *string          `json:"url"`
	Price        *decimal.Decimal `json:"price"`
	ImageURL     *string          `json:"image_url"`
	TargetAmount *decimal.Decimal `json:"target_amount"`
}

// IWishlistService liste ve hediye sahip işlemleri için arayüz.
type IWishlistService interface {
	CreateWishlist(ctx context.Context, userID uint, name, occasion string) (*models.Wishlist, error)
	GetWishlistsForUser(ctx context.Context, userID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetWishlistByID(ctx context.Context, id uint, userID uint) (*models.Wishlist, error)
	GetWishlistBySlug(ctx context.Context, slug string) (*models.Wishlist, error)
	DeleteWishlist(ctx context.Context, id uint, userID uint) error
	AddItem(ctx context.Context, wishlistID uint, userID uint, input AddItemInput) (*models.WishlistItem, error)
	UpdateItem(ctx context.Context, wishlistID, itemID, userID uint, input UpdateItemInput) (*models.WishlistItem, error)
	DeleteItem(ctx context.Context, wishlistID, itemID, userID uint) error
}

// WishlistService IWishlistService arayüzünü uygular.
type WishlistService struct {
	repo     repositories.IWishlistRepository
	itemRepo repositories.IItemRepository
	db       *gorm.DB
}

// NewWishlistService yeni bir WishlistService örneği oluşturur.
func NewWishlistService() IWishlistService {
	return &WishlistService{
		repo:     repositories.NewWishlistRepository(),
		itemRepo: repositories.NewItemRepository(),
		db:       configs.GetDB(),
	}
}

// CreateWishlist yeni liste oluşturur; public slug burada üretilir.
func (s *WishlistService) CreateWishlist(ctx context.Context, userID uint, name, occasion string) (*models.Wishlist, error) {
	if userID == 0 || name == "" || occasion == "" {
		return nil, fmt.Errorf("%w: isim ve ortam zorunludur", ErrWishlistInvalidInput)
	}

	for attempt := 0; attempt < slugMaxAttempts; attempt++ {
		slug, err := slugkey.Generate()
		if err != nil {
			return nil, err
		}
		exists, err := s.repo.SlugExists(ctx, slug)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		wishlist := &models.Wishlist{UserID: userID, Name: name, Occasion: occasion, Slug: slug}
		if err := s.repo.Create(ctx, wishlist); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Kontrol ile insert arasında aynı slug üretildi; yeniden dene.
				continue
			}
			configslog.Log.Error("CreateWishlist: DB hatası", zap.Uint("userID", userID), zap.Error(err))
			return nil, err
		}
		configslog.SLog.Infof("Dilek listesi oluşturuldu: ID %d, slug %s", wishlist.ID, wishlist.Slug)
		return wishlist, nil
	}
	return nil, ErrSlugGeneration
}

// GetWishlistsForUser kullanıcının listelerini sayfalayarak getirir.
func (s *WishlistService) GetWishlistsForUser(ctx context.Context, userID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if userID == 0 {
		return nil, ErrWishlistInvalidInput
	}
	params.Validate()

	wishlists, totalCount, err := s.repo.FindAllByUserIDPaginated(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	return &queryparams.PaginatedResult{
		Data: wishlists,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  totalCount,
			TotalPages:  queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// GetWishlistByID listeyi sahibi için getirir.
func (s *WishlistService) GetWishlistByID(ctx context.Context, id uint, userID uint) (*models.Wishlist, error) {
	wishlist, err := s.repo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrWishlistNotFound
		}
		return nil, err
	}
	return wishlist, nil
}

// GetWishlistBySlug listeyi public slug ile getirir.
func (s *WishlistService) GetWishlistBySlug(ctx context.Context, slug string) (*models.Wishlist, error) {
	if slug == "" {
		return nil, ErrWishlistNotFound
	}
	wishlist, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrWishlistNotFound
		}
		return nil, err
	}
	return wishlist, nil
}

// DeleteWishlist listeyi ve altındaki her şeyi tek transaction'da siler.
// Kaskad uygulama tarafında yapılır ki davranış sqlite testlerinde de
// Postgres'teki ile aynı olsun.
func (s *WishlistService) DeleteWishlist(ctx context.Context, id uint, userID uint) error {
	if id == 0 || userID == 0 {
		return ErrWishlistInvalidInput
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		wishlistRepoTx := repositories.NewWishlistRepositoryTx(tx)

		wishlist, err := wishlistRepoTx.FindByIDAndUser(ctx, id, userID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrWishlistNotFound
			}
			return err
		}

		itemSubquery := tx.Model(&models.WishlistItem{}).Select("id").Where("wishlist_id = ?", wishlist.ID)
		if err := tx.Where("item_id IN (?)", itemSubquery).Delete(&models.Reservation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id IN (?)", itemSubquery).Delete(&models.Contribution{}).Error; err != nil {
			return err
		}
		if err := tx.Where("wishlist_id = ?", wishlist.ID).Delete(&models.WishlistItem{}).Error; err != nil {
			return err
		}
		return wishlistRepoTx.Delete(ctx, wishlist)
	})

	if txErr != nil {
		if !errors.Is(txErr, ErrWishlistNotFound) {
			configslog.Log.Error("DeleteWishlist transaction hatası", zap.Uint("id", id), zap.Error(txErr))
		}
		return txErr
	}
	configslog.SLog.Infof("Dilek listesi silindi: ID %d (kullanıcı: %d)", id, userID)
	return nil
}

// AddItem listeye hediye ekler. Sahiplik kontrol edilir.
func (s *WishlistService) AddItem(ctx context.Context, wishlistID uint, userID uint, input AddItemInput) (*models.WishlistItem, error) {
	if input.Name == "" || input.URL == "" {
		return nil, fmt.Errorf("%w: hediye adı ve URL zorunludur", ErrWishlistInvalidInput)
	}
	if input.Price.IsNegative() {
		return nil, fmt.Errorf("%w: fiyat negatif olamaz", ErrWishlistInvalidInput)
	}

	wishlist, err := s.repo.FindByIDAndUser(ctx, wishlistID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrWishlistNotFound
		}
		return nil, err
	}

	item := &models.WishlistItem{
		WishlistID:   wishlist.ID,
		Name:         input.Name,
		URL:          input.URL,
		Price:        input.Price,
		ImageURL:     input.ImageURL,
		TargetAmount: input.TargetAmount,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		configslog.Log.Error("AddItem: DB hatası", zap.Uint("wishlistID", wishlistID), zap.Error(err))
		return nil, err
	}
	return item, nil
}

// UpdateItem hediyeyi kısmi olarak günceller.
func (s *WishlistService) UpdateItem(ctx context.Context, wishlistID, itemID, userID uint, input UpdateItemInput) (*models.WishlistItem, error) {
	item, err := s.itemRepo.FindOwned(ctx, wishlistID, itemID, userID, false)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, fmt.Errorf("%w: hediye adı boş olamaz", ErrWishlistInvalidInput)
		}
		item.Name = *input.Name
	}
	if input.URL != nil {
		item.URL = *input.URL
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, fmt.Errorf("%w: fiyat negatif olamaz", ErrWishlistInvalidInput)
		}
		item.Price = *input.Price
	}
	if input.ImageURL != nil {
		item.ImageURL = input.ImageURL
	}
	if input.TargetAmount != nil {
		item.TargetAmount = input.TargetAmount
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		configslog.Log.Error("UpdateItem: DB hatası", zap.Uint("itemID", itemID), zap.Error(err))
		return nil, err
	}
	return item, nil
}

// DeleteItem hediyeyi siler. İş kuralı: herhangi bir katkısı olan hediye
// silinemez (katkı yapanların parası sessizce kaybolmasın); yalnızca
// rezervasyonu olan hediye silinebilir, rezervasyon birlikte gider.
//
// Hediye satırı katkı akışıyla aynı kilitle alınır: kilitsiz bir sayım,
// eşzamanlı commit edilen bir katkının FK kaskadıyla yok olmasına kapı açar.
func (s *WishlistService) DeleteItem(ctx context.Context, wishlistID, itemID, userID uint) error {
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		itemRepoTx := repositories.NewItemRepositoryTx(tx)
		reservationRepoTx := repositories.NewReservationRepositoryTx(tx)
		contributionRepoTx := repositories.NewContributionRepositoryTx(tx)

		item, err := itemRepoTx.FindOwned(ctx, wishlistID, itemID, userID, true)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrItemNotFound
			}
			return err
		}

		count, err := contributionRepoTx.CountByItemID(ctx, item.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrItemHasContributions
		}

		if err := reservationRepoTx.DeleteByItemID(ctx, item.ID); err != nil {
			return err
		}
		return itemRepoTx.Delete(ctx, item.ID)
	})

	if txErr != nil {
		if !errors.Is(txErr, ErrItemNotFound) && !errors.Is(txErr, ErrItemHasContributions) {
			configslog.Log.Error("DeleteItem transaction hatası", zap.Uint("itemID", itemID), zap.Error(txErr))
		}
		return txErr
	}
	configslog.SLog.Infof("Hediye silindi: item %d (liste: %d)", itemID, wishlistID)
	return nil
}

var _ IWishlistService = (*WishlistService)(nil)
