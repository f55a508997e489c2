package main

import (
	"os"
	"os/signal"
	"syscall"

	"dilek.link/configs"
	"dilek.link/configs/configsdatabase"
	"dilek.link/configs/configslog"
	"dilek.link/database"
	"dilek.link/pkg/realtime"
	"dilek.link/routes"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	cfg := configs.Get()
	if cfg.AutoMigrate || cfg.SeedDemo {
		database.Initialize(configsdatabase.GetDB(), cfg.AutoMigrate, cfg.SeedDemo)
	}

	hub := realtime.NewHub()

	app := fiber.New(fiber.Config{
		AppName:      "dilek.link",
		ErrorHandler: errorHandler,
	})
	routes.SetupRoutes(app, hub)

	// Graceful shutdown: sinyal gelince dinleyici kapatılır, uçuştaki
	// istekler tamamlanır.
	shutdownDone := make(chan struct{})
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		configslog.SLog.Info("Kapatma sinyali alındı, sunucu durduruluyor...")
		if err := app.Shutdown(); err != nil {
			configslog.Log.Error("Sunucu kapatılırken hata oluştu", zap.Error(err))
		}
		close(shutdownDone)
	}()

	configslog.SLog.Infof("Sunucu %s adresinde dinliyor...", cfg.AppAddr)
	if err := app.Listen(cfg.AppAddr); err != nil {
		configslog.Log.Fatal("Sunucu başlatılamadı", zap.Error(err))
	}

	<-shutdownDone
	configslog.SLog.Info("Sunucu kapatıldı.")
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	if code >= fiber.StatusInternalServerError {
		configslog.Log.Error("İşlenmeyen istek hatası", zap.Int("status", code), zap.Error(err))
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
