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

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ContributionServiceError özel servis hataları
type ContributionServiceError string

func (e ContributionServiceError) Error() string { return string(e) }

const (
	ErrContributionItemNotFound  ContributionServiceError = "hediye bulunamadı"
	ErrContributionInvalidAmount ContributionServiceError = "katkı tutarı pozitif olmalı"
	ErrContributionExceedsTarget ContributionServiceError = "katkı toplamı hedefi aşıyor"
	ErrContributionInvalidKey    ContributionServiceError = "geçersiz kimlik anahtarı"
)

// IContributionService katkı işlemleri için arayüz.
type IContributionService interface {
	Contribute(ctx context.Context, slug string, itemID uint, caller identity.Identity, amount decimal.Decimal) (*models.WishlistItem, error)
}

// ContributionService IContributionService arayüzünü uygular.
type ContributionService struct {
	db *gorm.DB
}

// NewContributionService yeni bir ContributionService örneği oluşturur.
func NewContributionService() IContributionService {
	return &ContributionService{db: configs.GetDB()}
}

// Contribute hediyeye katkı ekler.
//
// Toplam-tavan kuralını koruyan bir şema kısıtı yok; doğruluk tamamen
// okuma-sonra-yazmanın aynı hediye üzerindeki eşzamanlı yazarlara karşı
// serileştirilmesine bağlı. Bunun için hediye satırı transaction başında
// FOR UPDATE ile kilitlenir: mevcut toplam bu kilit altında okunur, yeni
// satır aynı kilit altında yazılır. Tavanı aşacak istek bütünüyle
// reddedilir, kısmi/kırpılmış insert yapılmaz.
func (s *ContributionService) Contribute(ctx context.Context, slug string, itemID uint, caller identity.Identity, amount decimal.Decimal) (*models.WishlistItem, error) {
	if !caller.Valid() {
		return nil, ErrContributionInvalidKey
	}
	// Tutar kontrolü depolamaya dokunmadan önce yapılır.
	if !amount.IsPositive() {
		metrics.ContributionsRejectedTotal.WithLabelValues("invalid_amount").Inc()
		return nil, ErrContributionInvalidAmount
	}

	var contributedItem *models.WishlistItem
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		itemRepoTx := repositories.NewItemRepositoryTx(tx)
		contributionRepoTx := repositories.NewContributionRepositoryTx(tx)

		item, err := itemRepoTx.FindBySlugAndID(ctx, slug, itemID, true)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrContributionItemNotFound
			}
			return err
		}

		existing, err := contributionRepoTx.FindByItemID(ctx, item.ID)
		if err != nil {
			return err
		}
		total := decimal.Zero
		for _, c := range existing {
			total = total.Add(c.Amount)
		}

		if total.Add(amount).GreaterThan(item.EffectiveTarget()) {
			return ErrContributionExceedsTarget
		}

		contribution := &models.Contribution{
			ItemID:         item.ID,
			ContributorKey: caller.Key(),
			IsAnonymous:    caller.IsAnonymous(),
			Amount:         amount,
		}
		if err := contributionRepoTx.Create(ctx, contribution); err != nil {
			configslog.Log.Error("Contribute: insert hatası", zap.Uint("itemID", itemID), zap.Error(err))
			return err
		}

		contributedItem = item
		return nil
	})

	if txErr != nil {
		if errors.Is(txErr, ErrContributionExceedsTarget) {
			metrics.ContributionsRejectedTotal.WithLabelValues("target_exceeded").Inc()
		}
		return nil, txErr
	}

	metrics.ContributionsTotal.Inc()
	configslog.SLog.Infof("Katkı kabul edildi: item %d, tutar %s (liste: %s)", itemID, amount.StringFixed(2), slug)
	return contributedItem, nil
}

var _ IContributionService = (*ContributionService)(nil)
