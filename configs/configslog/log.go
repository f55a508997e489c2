package configslog

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log yapısal loglama için global zap logger.
// SLog aynı logger'ın sugared hali (printf tarzı mesajlar için).
var (
	Log  *zap.Logger
	SLog *zap.SugaredLogger

	initOnce sync.Once
)

// InitLogger global logger'ları hazırlar. Birden fazla çağrılması güvenlidir.
// APP_ENV=production ise JSON, aksi halde okunabilir konsol çıktısı üretir.
func InitLogger() {
	initOnce.Do(func() {
		var cfg zap.Config
		if os.Getenv("APP_ENV") == "production" {
			cfg = zap.NewProductionConfig()
		} else {
			cfg = zap.NewDevelopmentConfig()
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}

		logger, err := cfg.Build(zap.AddCallerSkip(0))
		if err != nil {
			// Logger kurulamazsa devam etmenin anlamı yok.
			panic("logger baslatilamadi: " + err.Error())
		}

		Log = logger
		SLog = logger.Sugar()
	})
}

// SyncLogger buffer'daki logları flush eder. main içinde defer ile çağrılır.
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync()
	}
}
