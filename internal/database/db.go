package database

import (
	"fmt"
	"log"

	"stoktakip-backend/internal/config"
	"stoktakip-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect: Postgres bağlantısını açar ve migration'ları çalıştırır.
// Handle global tutulmaz; servisler *gorm.DB'yi constructor üzerinden alır,
// tüm stok mutasyonları servis API'si üzerinden geçer.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("veritabanına bağlanılamadı: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
	return db, nil
}

// Migrate: Şemayı kurar. Testlerde sqlite handle'ı ile de çağrılır.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.InventoryItem{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.StockAlert{},
		&models.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("AutoMigrate hatası: %w", err)
	}
	return nil
}
