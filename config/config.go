package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"venuebook/internal/assets"
	"venuebook/internal/models"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
}

func LoadConfig() (*Config, error) {
	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
	}, nil
}

type AssetConfig struct {
	Bucket    string
	Region    string
	Endpoint  string
	PathStyle bool
}

func LoadAssetConfig() (*AssetConfig, error) {
	cfg := &AssetConfig{
		Bucket:    os.Getenv("ASSET_S3_BUCKET"),
		Region:    os.Getenv("ASSET_S3_REGION"),
		Endpoint:  os.Getenv("ASSET_S3_ENDPOINT"),
		PathStyle: strings.EqualFold(os.Getenv("ASSET_S3_PATH_STYLE"), "true"),
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("ASSET_S3_BUCKET is required")
	}
	return cfg, nil
}

func InitAssetStore(ctx context.Context, cfg *AssetConfig) (assets.Store, error) {
	return assets.NewS3Store(ctx, assets.S3Config{
		Region:    cfg.Region,
		Bucket:    cfg.Bucket,
		Endpoint:  cfg.Endpoint,
		PathStyle: cfg.PathStyle,
	})
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// AutoMigrate also creates the unique (venue_id, booking_date) index
	// that backstops the double-booking check under concurrent writers.
	err = db.AutoMigrate(&models.Venue{}, &models.Event{}, &models.Booking{})
	if err != nil {
		return nil, err
	}

	return db, nil
}
