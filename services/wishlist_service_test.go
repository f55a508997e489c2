package services

import (
	"context"
	"sync"
	"testing"

	"dilek.link/models"
	"dilek.link/pkg/identity"
	"dilek.link/pkg/queryparams"
	"dilek.link/pkg/slugkey"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T, email string) *models.User {
	t.Helper()
	// setupTestDB global db'yi taktığı için repo katmanı üzerinden değil
	// doğrudan servisle çalışıyoruz; kullanıcı fikstürü yeterli.
	user := &models.User{Email: email, PasswordHash: "x", Name: "Test"}
	require.NoError(t, NewWishlistService().(*WishlistService).db.Create(user).Error)
	return user
}

func TestCreateWishlist(t *testing.T) {
	setupTestDB(t)
	svc := NewWishlistService()
	ctx := context.Background()
	user := createTestUser(t, "a@example.com")

	wishlist, err := svc.CreateWishlist(ctx, user.ID, "Düğün Listesi", "Düğün")
	require.NoError(t, err)
	require.Len(t, wishlist.Slug, slugkey.KeyLength)
	for _, r := range wishlist.Slug {
		require.Contains(t, "abcdefghijklmnopqrstuvwxyz0123456789", string(r))
	}

	_, err = svc.CreateWishlist(ctx, user.ID, "", "Düğün")
	require.ErrorIs(t, err, ErrWishlistInvalidInput)
	_, err = svc.CreateWishlist(ctx, 0, "Liste", "Düğün")
	require.ErrorIs(t, err, ErrWishlistInvalidInput)
}

func TestGetWishlistOwnership(t *testing.T) {
	setupTestDB(t)
	svc := NewWishlistService()
	ctx := context.Background()
	owner := createTestUser(t, "sahip@example.com")
	other := createTestUser(t, "baskasi@example.com")

	wishlist, err := svc.CreateWishlist(ctx, owner.ID, "Liste", "Yılbaşı")
	require.NoError(t, err)

	_, err = svc.GetWishlistByID(ctx, wishlist.ID, owner.ID)
	require.NoError(t, err)

	// Başkasının listesi, yokmuş gibi davranılır.
	_, err = svc.GetWishlistByID(ctx, wishlist.ID, other.ID)
	require.ErrorIs(t, err, ErrWishlistNotFound)

	bySlug, err := svc.GetWishlistBySlug(ctx, wishlist.Slug)
	require.NoError(t, err)
	require.Equal(t, wishlist.ID, bySlug.ID)

	_, err = svc.GetWishlistBySlug(ctx, "hic-yok")
	require.ErrorIs(t, err, ErrWishlistNotFound)
}

func TestGetWishlistsForUserPagination(t *testing.T) {
	setupTestDB(t)
	svc := NewWishlistService()
	ctx := context.Background()
	user := createTestUser(t, "a@example.com")

	for i := 0; i < 3; i++ {
		_, err := svc.CreateWishlist(ctx, user.ID, "Liste", "Doğum Günü")
		require.NoError(t, err)
	}

	result, err := svc.GetWishlistsForUser(ctx, user.ID, queryparams.ListParams{Page: 1, PerPage: 2})
	require.NoError(t, err)
	require.EqualValues(t, 3, result.Meta.TotalItems)
	require.Equal(t, 2, result.Meta.TotalPages)
	require.Len(t, result.Data.([]models.Wishlist), 2)
}

func TestAddAndUpdateItem(t *testing.T) {
	setupTestDB(t)
	svc := NewWishlistService()
	ctx := context.Background()
	user := createTestUser(t, "a@example.com")

	wishlist, err := svc.CreateWishlist(ctx, user.ID, "Liste", "Doğum Günü")
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, wishlist.ID, user.ID, AddItemInput{Name: "", URL: "https://x"})
	require.ErrorIs(t, err, ErrWishlistInvalidInput)

	item, err := svc.AddItem(ctx, wishlist.ID, user.ID, AddItemInput{
		Name:  "Kahve Makinesi",
		URL:   "https://example.com/kahve",
		Price: decimal.NewFromInt(1200),
	})
	require.NoError(t, err)

	// Kısmi güncelleme: yalnızca fiyat değişir.
	newPrice := decimal.NewFromInt(999)
	updated, err := svc.UpdateItem(ctx, wishlist.ID, item.ID, user.ID, UpdateItemInput{Price: &newPrice})
	require.NoError(t, err)
	require.Equal(t, "Kahve Makinesi", updated.Name)
	require.True(t, updated.Price.Equal(newPrice))

	negative := decimal.NewFromInt(-1)
	_, err = svc.UpdateItem(ctx, wishlist.ID, item.ID, user.ID, UpdateItemInput{Price: &negative})
	require.ErrorIs(t, err, ErrWishlistInvalidInput)
}

func TestDeleteItemRules(t *testing.T) {
	db := setupTestDB(t)
	svc := NewWishlistService()
	ctx := context.Background()
	user := createTestUser(t, "a@example.com")

	wishlist, err := svc.CreateWishlist(ctx, user.ID, "Liste", "Doğum Günü")
	require.NoError(t, err)
	funded, err := svc.AddItem(ctx, wishlist.ID, user.ID, AddItemInput{Name: "Fonlanan", URL: "https://x", Price: decimal.NewFromInt(100)})
	require.NoError(t, err)
	reservedOnly, err := svc.AddItem(ctx, wishlist.ID, user.ID, AddItemInput{Name: "Rezerveli", URL: "https://x", Price: decimal.NewFromInt(100)})
	require.NoError(t, err)

	_, err = NewContributionService().Contribute(ctx, wishlist.Slug, funded.ID, identity.Anonymous("token-a"), decimal.NewFromInt(10))
	require.NoError(t, err)
	_, err = NewReservationService().Reserve(ctx, wishlist.Slug, reservedOnly.ID, identity.Anonymous("token-b"))
	require.NoError(t, err)

	// Katkılı hediye silinemez.
	err = svc.DeleteItem(ctx, wishlist.ID, funded.ID, user.ID)
	require.ErrorIs(t, err, ErrItemHasContributions)

	// Sadece rezerveli hediye silinir, rezervasyon da birlikte gider.
	require.NoError(t, svc.DeleteItem(ctx, wishlist.ID, reservedOnly.ID, user.ID))
	var count int64
	require.NoError(t, db.Model(&models.Reservation{}).Where("item_id = ?", reservedOnly.ID).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

// Silme ile katkı aynı hediye satırının kilidi üzerinden serileşir: katkı
// kabul edildiyse hediye silinmemiş olmalı, hediye silindiyse katkı kabul
// edilmemiş olmalı. Commit edilmiş bir katkı asla kaskadla yok olmaz.
func TestDeleteItemContributeRaceNeverLosesFunds(t *testing.T) {
	db := setupTestDB(t)
	svc := NewWishlistService()
	contribSvc := NewContributionService()
	ctx := context.Background()
	user := createTestUser(t, "a@example.com")

	wishlist, err := svc.CreateWishlist(ctx, user.ID, "Liste", "Doğum Günü")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		item, err := svc.AddItem(ctx, wishlist.ID, user.ID, AddItemInput{
			Name: "Yarışan Hediye", URL: "https://x", Price: decimal.NewFromInt(100),
		})
		require.NoError(t, err)

		var wg sync.WaitGroup
		var contribErr, delErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, contribErr = contribSvc.Contribute(ctx, wishlist.Slug, item.ID, identity.Anonymous("token-a"), decimal.NewFromInt(10))
		}()
		go func() {
			defer wg.Done()
			delErr = svc.DeleteItem(ctx, wishlist.ID, item.ID, user.ID)
		}()
		wg.Wait()

		var contribCount, itemCount int64
		require.NoError(t, db.Model(&models.Contribution{}).Where("item_id = ?", item.ID).Count(&contribCount).Error)
		require.NoError(t, db.Model(&models.WishlistItem{}).Where("id = ?", item.ID).Count(&itemCount).Error)

		if contribCount > 0 {
			require.EqualValues(t, 1, itemCount, "katkı varken hediye silinmiş")
			require.ErrorIs(t, delErr, ErrItemHasContributions)
		} else {
			require.EqualValues(t, 0, itemCount)
			require.NoError(t, delErr)
			require.ErrorIs(t, contribErr, ErrContributionItemNotFound)
		}
	}
}

func TestDeleteWishlistCascades(t *testing.T) {
	db := setupTestDB(t)
	svc := NewWishlistService()
	ctx := context.Background()
	user := createTestUser(t, "a@example.com")
	other := createTestUser(t, "b@example.com")

	wishlist, err := svc.CreateWishlist(ctx, user.ID, "Liste", "Doğum Günü")
	require.NoError(t, err)
	item, err := svc.AddItem(ctx, wishlist.ID, user.ID, AddItemInput{Name: "Hediye", URL: "https://x", Price: decimal.NewFromInt(100)})
	require.NoError(t, err)

	_, err = NewContributionService().Contribute(ctx, wishlist.Slug, item.ID, identity.Anonymous("token-a"), decimal.NewFromInt(10))
	require.NoError(t, err)
	_, err = NewReservationService().Reserve(ctx, wishlist.Slug, item.ID, identity.Anonymous("token-b"))
	require.NoError(t, err)

	// Başkası silemez.
	require.ErrorIs(t, svc.DeleteWishlist(ctx, wishlist.ID, other.ID), ErrWishlistNotFound)

	require.NoError(t, svc.DeleteWishlist(ctx, wishlist.ID, user.ID))

	for _, model := range []interface{}{&models.Wishlist{}, &models.WishlistItem{}, &models.Reservation{}, &models.Contribution{}} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		require.EqualValues(t, 0, count, "%T tablosu boş olmalı", model)
	}
}
