package services

import (
	"context"
	"errors"

	"dilek.link/configs"
	"dilek.link/configs/configslog"
	"dilek.link/models"
	"dilek.link/pkg/identity"
	"dilek.link/pkg/metrics"
	"dilek.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReservationServiceError özel servis hataları
type ReservationServiceError string

func (e ReservationServiceError) Error() string { return string(e) }

const (
	ErrReservationItemNotFound ReservationServiceError = "hediye bulunamadı"
	ErrReservationExists       ReservationServiceError = "hediye zaten rezerve edilmiş"
	ErrReservationInvalidKey   ReservationServiceError = "geçersiz kimlik anahtarı"
)

// IReservationService rezervasyon işlemleri için arayüz.
// Her operasyon veritabanına karşı tek bir atomik transaction'dır.
type IReservationService interface {
	Reserve(ctx context.Context, slug string, itemID uint, caller identity.Identity) (*models.WishlistItem, error)
	Unreserve(ctx context.Context, slug string, itemID uint, caller identity.Identity) (bool, error)
}

// ReservationService IReservationService arayüzünü uygular.
type ReservationService struct {
	db *gorm.DB
}

// NewReservationService yeni bir ReservationService örneği oluşturur.
func NewReservationService() IReservationService {
	return &ReservationService{db: configs.GetDB()}
}

// Reserve hediyeyi çağıranın adına rezerve eder.
//
// Ön kontrol (ExistsByItemID) yaygın durumda temiz hata verir; iki isteğin
// gerçekten paralel geldiği yarışta ise son söz item_id üzerindeki unique
// index'indir. Kaybeden insert gorm.ErrDuplicatedKey ile döner ve
// ErrReservationExists'e çevrilir: yarışı kaybetmek, geç kalmış olmaktan
// ayırt edilemez.
func (s *ReservationService) Reserve(ctx context.Context, slug string, itemID uint, caller identity.Identity) (*models.WishlistItem, error) {
	if !caller.Valid() {
		return nil, ErrReservationInvalidKey
	}

	var reservedItem *models.WishlistItem
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		itemRepoTx := repositories.NewItemRepositoryTx(tx)
		reservationRepoTx := repositories.NewReservationRepositoryTx(tx)

		item, err := itemRepoTx.FindBySlugAndID(ctx, slug, itemID, false)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrReservationItemNotFound
			}
			return err
		}

		exists, err := reservationRepoTx.ExistsByItemID(ctx, item.ID)
		if err != nil {
			return err
		}
		if exists {
			return ErrReservationExists
		}

		reservation := &models.Reservation{
			ItemID:      item.ID,
			ReserverKey: caller.Key(),
			IsAnonymous: caller.IsAnonymous(),
		}
		if err := reservationRepoTx.Create(ctx, reservation); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Ön kontrol ile insert arasında yarış kaybedildi.
				return ErrReservationExists
			}
			configslog.Log.Error("Reserve: insert hatası", zap.Uint("itemID", itemID), zap.Error(err))
			return err
		}

		reservedItem = item
		return nil
	})

	if txErr != nil {
		if errors.Is(txErr, ErrReservationExists) {
			metrics.ReservationConflictsTotal.Inc()
		}
		return nil, txErr
	}

	metrics.ReservationsTotal.Inc()
	configslog.SLog.Infof("Hediye rezerve edildi: item %d (liste: %s)", itemID, slug)
	return reservedItem, nil
}

// Unreserve çağıranın kendi rezervasyonunu kaldırır.
// Rezervasyon yoksa veya başkasına aitse sessizce false döner; iki durum
// arasında fark belli edilmez.
func (s *ReservationService) Unreserve(ctx context.Context, slug string, itemID uint, caller identity.Identity) (bool, error) {
	if !caller.Valid() {
		return false, ErrReservationInvalidKey
	}

	var removed bool
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		itemRepoTx := repositories.NewItemRepositoryTx(tx)
		reservationRepoTx := repositories.NewReservationRepositoryTx(tx)

		item, err := itemRepoTx.FindBySlugAndID(ctx, slug, itemID, false)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrReservationItemNotFound
			}
			return err
		}

		removed, err = reservationRepoTx.DeleteByItemAndKey(ctx, item.ID, caller.Key())
		return err
	})

	if txErr != nil {
		if errors.Is(txErr, ErrReservationItemNotFound) {
			return false, nil
		}
		return false, txErr
	}

	if removed {
		configslog.SLog.Infof("Rezervasyon kaldırıldı: item %d (liste: %s)", itemID, slug)
	}
	return removed, nil
}

var _ IReservationService = (*ReservationService)(nil)
