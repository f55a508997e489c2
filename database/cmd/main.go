package main

import (
	"flag"

	"dilek.link/configs"
	"dilek.link/configs/configsdatabase"
	"dilek.link/configs/configslog"
	"dilek.link/database"
)

// Şema ve demo verisi kurulum aracı. Sunucu açılışındaki AUTO_MIGRATE /
// SEED_DEMO yolundan bağımsız, elle çalıştırmak için:
//
//	go run ./database/cmd -migrate -seed
func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	migrateFlag := flag.Bool("migrate", false, "Tablo migrasyonlarını sırayla çalıştır")
	seedFlag := flag.Bool("seed", false, "Demo kullanıcı ve örnek listeyi ek")
	flag.Parse()

	// Bayrak verilmese de SEED_DEMO=true ortamı seed'i açar; sunucu ve araç
	// aynı anahtarı okur.
	seed := *seedFlag || configs.Get().SeedDemo

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	database.Initialize(configsdatabase.GetDB(), *migrateFlag, seed)

	configslog.SLog.Infow("Veritabanı kurulum aracı tamamlandı",
		"migrate", *migrateFlag,
		"seed", seed,
	)
}
