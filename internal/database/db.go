package database

import (
	"log"

	"warehouse-backend/internal/config"
	"warehouse-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	log.Println("database connected, migration complete")
}

// Migrate creates or updates the schema. Shared with the test database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Category{},
		&models.User{},
		&models.Item{},
		&models.QtyHistory{},
		&models.ScanLog{},
	)
}
