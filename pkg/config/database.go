package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"memelaunch/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection
func InitDB() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Failed to get database instance:", err)
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(50)
	sqlDB.SetMaxOpenConns(200)
	sqlDB.SetConnMaxLifetime(time.Hour)

	DB = db

	if err := AutoMigrate(DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
}

// AutoMigrate creates or updates the schema for all engine models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.PlatformConfig{},
		&models.Meme{},
		&models.Backing{},
		&models.BondingCurve{},
		&models.GenesisPool{},
		&models.LamportAccount{},
		&models.TokenMint{},
		&models.TokenBalance{},
		&models.TradeRecord{},
		&models.FeeClaimRecord{},
	)
}
