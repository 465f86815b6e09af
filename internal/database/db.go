package database

import (
	"log"

	"katalog-backend/internal/config"
	"katalog-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	// Koleksiyonları yazan servis ayrı; AutoMigrate burada sadece boş bir
	// lokal şemayı ayağa kaldırmak için duruyor, mevcut tablolara dokunmaz.
	if err := DB.AutoMigrate(&models.Product{}, &models.InventoryBatch{}); err != nil {
		log.Fatalf("Migration başarısız: %v", err)
	}
}
