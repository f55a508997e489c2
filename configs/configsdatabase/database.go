package configsdatabase

import (
	"time"

	"dilek.link/configs/configslog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var db *gorm.DB

type dbConfig struct {
	DSN             string `envconfig:"DATABASE_DSN" default:"host=localhost user=dilek password=dilek dbname=dilek port=5432 sslmode=disable TimeZone=UTC"`
	MaxOpenConns    int    `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int    `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifeMins int    `envconfig:"DB_CONN_MAX_LIFE_MIN" default:"30"`
}

// InitDB Postgres bağlantısını kurar ve global db örneğini ayarlar.
// TranslateError açık: unique index ihlalleri gorm.ErrDuplicatedKey olarak döner,
// rezervasyon yarışının tespiti buna dayanır.
func InitDB() {
	_ = godotenv.Load()

	var cfg dbConfig
	if err := envconfig.Process("", &cfg); err != nil {
		configslog.Log.Fatal("Veritabanı konfigürasyonu okunamadı", zap.Error(err))
	}

	gormDB, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		configslog.Log.Fatal("Veritabanına bağlanılamadı", zap.Error(err))
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		configslog.Log.Fatal("sql.DB örneği alınamadı", zap.Error(err))
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifeMins) * time.Minute)

	db = gormDB
	configslog.SLog.Info("Veritabanı bağlantısı kuruldu")
}

// GetDB global gorm örneğini döndürür.
func GetDB() *gorm.DB {
	return db
}

// Set global db örneğini değiştirir. Testlerin sqlite örneği takması için.
func Set(d *gorm.DB) {
	db = d
}

// CloseDB bağlantı havuzunu kapatır.
func CloseDB() {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		configslog.Log.Error("CloseDB: sql.DB alınamadı", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		configslog.Log.Error("Veritabanı bağlantısı kapatılamadı", zap.Error(err))
	}
}
