package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/etherdox/ethersms/models"
)

type Config struct {
	Port            string
	DatabaseURL     string
	JWTSecret       string
	Environment     string
	LogLevel        string
	SupportWhatsApp string
}

func LoadConfig() (*Config, error) {
	godotenv.Load()

	return &Config{
		Port:            os.Getenv("PORT"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       getEnvOrDefault("JWT_SECRET", "dev-secret-change-me"),
		Environment:     getEnvOrDefault("ENVIRONMENT", "development"),
		LogLevel:        getEnvOrDefault("LOG_LEVEL", "info"),
		SupportWhatsApp: getEnvOrDefault("SUPPORT_WHATSAPP_NUMBER", "+2347088501777"),
	}, nil
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate runs the schema migration and seeds the settings the settlement
// engine reads. Shared with the test databases.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.PhoneNumber{},
		&models.Order{},
		&models.Payment{},
		&models.Kyc{},
		&models.Activity{},
		&models.Product{},
		&models.Service{},
		&models.Country{},
		&models.Setting{},
		&models.ChatMessage{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	defaults := []models.Setting{
		{Key: models.SettingReferralsNeeded, Value: "20"},
		{Key: models.SettingKycRequiredForReferral, Value: "true"},
	}
	for _, s := range defaults {
		if err := db.Where(models.Setting{Key: s.Key}).FirstOrCreate(&s).Error; err != nil {
			return fmt.Errorf("failed to seed setting %s: %w", s.Key, err)
		}
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
