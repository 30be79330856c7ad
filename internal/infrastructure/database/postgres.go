package database

import (
	"errors"
	"fmt"
	"log"

	"github.com/sangkips/shopdesk-pos/internal/config"
	"github.com/sangkips/shopdesk-pos/internal/domain/entity"
	"github.com/sangkips/shopdesk-pos/internal/domain/enum"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&entity.ShopSettings{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedShopSettings creates the settings row from configuration when the
// table is empty. Existing settings are never overwritten.
func SeedShopSettings(db *gorm.DB, shop *config.ShopConfig) error {
	var existing entity.ShopSettings
	err := db.Order("created_at ASC").First(&existing).Error
	if err == nil {
		log.Printf("Shop settings already exist: %s", existing.ShopName)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to read shop settings: %w", err)
	}

	settings := DefaultShopSettings(shop)
	if err := db.Create(settings).Error; err != nil {
		return fmt.Errorf("failed to seed shop settings: %w", err)
	}
	log.Printf("Shop settings seeded for %s", settings.ShopName)
	return nil
}

// DefaultShopSettings builds the settings row used on first start.
func DefaultShopSettings(shop *config.ShopConfig) *entity.ShopSettings {
	paper := shop.PaperSize
	if paper == "" {
		paper = entity.PaperSize80mm
	}
	template := enum.InvoiceTemplateThermal
	if paper == entity.PaperSizeA4 {
		template = enum.InvoiceTemplateA4
	}
	currency := shop.Currency
	if currency == "" {
		currency = "Rs"
	}
	return &entity.ShopSettings{
		ShopName:        shop.Name,
		Address:         shop.Address,
		Phone:           shop.Phone,
		Email:           shop.Email,
		GST:             shop.GST,
		ShowGST:         shop.GST != "",
		FooterText:      shop.FooterText,
		Currency:        currency,
		CreditDays:      30,
		PaperSize:       paper,
		InvoiceTemplate: template,
		AutoPrint:       true,
	}
}
