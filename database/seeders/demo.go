package seeders

import (
	"errors"

	"dilek.link/configs/configslog"
	"dilek.link/models"
	"dilek.link/pkg/identity"
	"dilek.link/pkg/slugkey"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const demoUserEmail = "demo@dilek.link"

// SeedDemoData demo kullanıcıyı ve örnek bir dilek listesini oluşturur.
// Kullanıcı zaten varsa hiçbir şey yapılmaz; seeder idempotenttir.
func SeedDemoData(db *gorm.DB) error {
	var existing models.User
	result := db.Where("email = ?", demoUserEmail).First(&existing)
	if result.Error == nil {
		configslog.SLog.Debugf("Demo kullanıcı '%s' zaten mevcut, seed atlanıyor.", demoUserEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Demo kullanıcı kontrol edilirken veritabanı hatası", zap.Error(result.Error))
		return result.Error
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := models.User{Email: demoUserEmail, PasswordHash: string(hash), Name: "Demo Kullanıcı"}
	if err := db.Create(&user).Error; err != nil {
		configslog.Log.Error("Demo kullanıcı oluşturulamadı", zap.Error(err))
		return err
	}

	slug, err := slugkey.Generate()
	if err != nil {
		return err
	}

	target := decimal.NewFromInt(500)
	wishlist := models.Wishlist{
		UserID:   user.ID,
		Name:     "Demo Doğum Günü Listesi",
		Occasion: "Doğum Günü",
		Slug:     slug,
		Items: []models.WishlistItem{
			{Name: "Kahve Makinesi", Price: decimal.NewFromInt(1200)},
			{Name: "Kulaklık", Price: decimal.NewFromInt(800), TargetAmount: &target},
			{Name: "Kitap Seti", Price: decimal.NewFromFloat(249.90)},
		},
	}
	if err := db.Create(&wishlist).Error; err != nil {
		configslog.Log.Error("Demo liste oluşturulamadı", zap.Error(err))
		return err
	}

	// Liste boş durmasın: anonim bir ziyaretçi ilk hediyeyi rezerve etmiş,
	// bir başkası hedefli hediyeye katkı yapmış gibi görünür.
	reservation := models.Reservation{
		ItemID:      wishlist.Items[0].ID,
		ReserverKey: identity.NewAnonymousToken(),
		IsAnonymous: true,
	}
	if err := db.Create(&reservation).Error; err != nil {
		configslog.Log.Error("Demo rezervasyon oluşturulamadı", zap.Error(err))
		return err
	}
	contribution := models.Contribution{
		ItemID:         wishlist.Items[1].ID,
		ContributorKey: identity.NewAnonymousToken(),
		IsAnonymous:    true,
		Amount:         decimal.NewFromInt(150),
	}
	if err := db.Create(&contribution).Error; err != nil {
		configslog.Log.Error("Demo katkı oluşturulamadı", zap.Error(err))
		return err
	}

	configslog.SLog.Infof("Demo veriler oluşturuldu (kullanıcı ID: %d, slug: %s).", user.ID, slug)
	return nil
}
