package configs

import (
	"sync"

	"dilek.link/configs/configsdatabase"
	"dilek.link/configs/configslog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Config uygulama genelindeki ayarlar. .env + ortam değişkenlerinden yüklenir.
type Config struct {
	AppAddr        string `envconfig:"APP_ADDR" default:":8080"`
	AppEnv         string `envconfig:"APP_ENV" default:"development"`
	CORSOrigins    string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000,http://127.0.0.1:3000"`
	JWTSecret      string `envconfig:"JWT_SECRET" default:"dilek-gelistirme-anahtari"`
	JWTExpireHours int    `envconfig:"JWT_EXPIRE_HR" default:"168"`
	AutoMigrate    bool   `envconfig:"AUTO_MIGRATE" default:"true"`
	SeedDemo       bool   `envconfig:"SEED_DEMO" default:"false"`
}

var (
	app      Config
	loadOnce sync.Once
)

// Get uygulama konfigürasyonunu döndürür, ilk çağrıda yükler.
func Get() Config {
	loadOnce.Do(func() {
		_ = godotenv.Load()
		if err := envconfig.Process("", &app); err != nil {
			configslog.Log.Fatal("Uygulama konfigürasyonu okunamadı", zap.Error(err))
		}
	})
	return app
}

// GetDB repository katmanının kullandığı global gorm örneği.
func GetDB() *gorm.DB {
	return configsdatabase.GetDB()
}
