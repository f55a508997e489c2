package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"dilek.link/models"
	"dilek.link/pkg/identity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestReserveAndUnreserve(t *testing.T) {
	db := setupTestDB(t)
	wishlist, item := seedWishlist(t, db, decimal.NewFromInt(100), nil)
	svc := NewReservationService()
	ctx := context.Background()

	callerA := identity.Anonymous("token-a")
	callerB := identity.Anonymous("token-b")

	reserved, err := svc.Reserve(ctx, wishlist.Slug, item.ID, callerA)
	require.NoError(t, err)
	require.Equal(t, item.ID, reserved.ID)

	// İkinci rezervasyon denemesi reddedilir.
	_, err = svc.Reserve(ctx, wishlist.Slug, item.ID, callerB)
	require.ErrorIs(t, err, ErrReservationExists)

	// Başkasının rezervasyonu kaldırılamaz; hata da verilmez.
	removed, err := svc.Unreserve(ctx, wishlist.Slug, item.ID, callerB)
	require.NoError(t, err)
	require.False(t, removed)

	// Sahibi kaldırabilir.
	removed, err = svc.Unreserve(ctx, wishlist.Slug, item.ID, callerA)
	require.NoError(t, err)
	require.True(t, removed)

	// Hediye yeniden boşta; bu sefer B alabilir.
	_, err = svc.Reserve(ctx, wishlist.Slug, item.ID, callerB)
	require.NoError(t, err)
}

func TestReserveRegisteredAndAnonymousShareOneSlot(t *testing.T) {
	db := setupTestDB(t)
	wishlist, item := seedWishlist(t, db, decimal.NewFromInt(100), nil)
	svc := NewReservationService()
	ctx := context.Background()

	_, err := svc.Reserve(ctx, wishlist.Slug, item.ID, identity.Registered(7, "ziyaretci@example.com"))
	require.NoError(t, err)

	_, err = svc.Reserve(ctx, wishlist.Slug, item.ID, identity.Anonymous("token-x"))
	require.ErrorIs(t, err, ErrReservationExists)

	var stored models.Reservation
	require.NoError(t, db.Where("item_id = ?", item.ID).First(&stored).Error)
	require.Equal(t, "ziyaretci@example.com", stored.ReserverKey)
	require.False(t, stored.IsAnonymous)
}

func TestReserveUnknownItem(t *testing.T) {
	db := setupTestDB(t)
	wishlist, item := seedWishlist(t, db, decimal.NewFromInt(100), nil)
	svc := NewReservationService()
	ctx := context.Background()

	_, err := svc.Reserve(ctx, "yanlis-slug", item.ID, identity.Anonymous("token-a"))
	require.ErrorIs(t, err, ErrReservationItemNotFound)

	_, err = svc.Reserve(ctx, wishlist.Slug, item.ID+999, identity.Anonymous("token-a"))
	require.ErrorIs(t, err, ErrReservationItemNotFound)
}

func TestReserveInvalidKey(t *testing.T) {
	db := setupTestDB(t)
	wishlist, item := seedWishlist(t, db, decimal.NewFromInt(100), nil)
	svc := NewReservationService()

	_, err := svc.Reserve(context.Background(), wishlist.Slug, item.ID, identity.Anonymous("  "))
	require.ErrorIs(t, err, ErrReservationInvalidKey)
}

func TestUnreserveMissingItemIsSilent(t *testing.T) {
	setupTestDB(t)
	svc := NewReservationService()

	removed, err := svc.Unreserve(context.Background(), "yok-boyle-liste", 1, identity.Anonymous("token-a"))
	require.NoError(t, err)
	require.False(t, removed)
}

// Aynı hediyeye aynı anda yüklenen N rezervasyondan tam olarak biri kazanır;
// kaybedenler ErrReservationExists görür ve tabloda tek satır kalır.
func TestReserveConcurrentSingleWinner(t *testing.T) {
	db := setupTestDB(t)
	wishlist, item := seedWishlist(t, db, decimal.NewFromInt(100), nil)
	svc := NewReservationService()
	ctx := context.Background()

	const attempts = 8
	results := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			caller := identity.Anonymous(fmt.Sprintf("yarisci-%d", n))
			_, err := svc.Reserve(ctx, wishlist.Slug, item.ID, caller)
			results[n] = err
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			require.ErrorIs(t, err, ErrReservationExists)
		}
	}
	require.Equal(t, 1, winners)

	var count int64
	require.NoError(t, db.Model(&models.Reservation{}).Where("item_id = ?", item.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}
