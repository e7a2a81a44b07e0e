// internal/database/connection.go
package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stitchworks/apparel-backend/internal/config"
	"github.com/stitchworks/apparel-backend/internal/models"
)

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.Info("Database connection established successfully")
	return db, nil
}

func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("Error getting underlying sql.DB")
		return
	}

	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Error("Error closing database connection")
	} else {
		logrus.Info("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	logrus.Info("Running database migrations...")

	// gen_random_uuid() lives in pgcrypto before PostgreSQL 13
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"pgcrypto\"").Error; err != nil {
		return fmt.Errorf("failed to create pgcrypto extension: %w", err)
	}

	err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Variant{},
		&models.DesignCategory{},
		&models.Design{},
		&models.Promotion{},
		&models.Customer{},
		&models.Order{},
		&models.OrderLine{},
		&models.StoreCreditGrant{},
		&models.AdminSettings{},
		&models.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	logrus.Info("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// Catalog
		"CREATE INDEX IF NOT EXISTS idx_products_category_status ON products(category_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_variants_product_color_size ON variants(product_id, color, size)",

		// Promotions are read by activity window on every quote
		"CREATE INDEX IF NOT EXISTS idx_promotions_window ON promotions(is_active, start_date, end_date)",
		"CREATE INDEX IF NOT EXISTS idx_promotions_scope_target ON promotions(scope, target_id)",

		// Orders
		"CREATE INDEX IF NOT EXISTS idx_orders_customer_status ON orders(customer_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_order_lines_order_position ON order_lines(order_id, position)",
		"CREATE INDEX IF NOT EXISTS idx_store_credit_grants_customer ON store_credit_grants(customer_id, created_at DESC)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_store_credit_grants_order_promotion ON store_credit_grants(order_id, promotion_id)",

		// Admin
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_actor_action ON audit_logs(actor, action)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_resource ON audit_logs(resource_type, resource_id)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs(created_at DESC)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_admin_settings_category_key ON admin_settings(category, key) WHERE deleted_at IS NULL",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			// Continue with other indexes instead of failing completely
			logrus.WithError(err).WithField("index", index).Warn("Failed to create index")
		}
	}

	return nil
}

// SeedInitialData writes the store customization defaults once. Later edits
// happen through the admin settings endpoint and are never overwritten here.
func SeedInitialData(db *gorm.DB, pricing config.PricingConfig) error {
	logrus.Info("Seeding initial data...")

	var count int64
	if err := db.Model(&models.AdminSettings{}).
		Where("category = ? AND key = ?", models.SettingsCategoryPricing, models.SettingsKeyCustomization).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check customization settings: %w", err)
	}

	if count == 0 {
		setting := &models.AdminSettings{
			Category: models.SettingsCategoryPricing,
			Key:      models.SettingsKeyCustomization,
			Value: models.JSONB{
				"design_small":          pricing.DesignSmall,
				"design_medium":         pricing.DesignMedium,
				"design_large":          pricing.DesignLarge,
				"personalization_small": pricing.PersonalizationSmall,
				"personalization_large": pricing.PersonalizationLarge,
			},
			DataType:    "json",
			Description: "Store-wide design size prices and personalization prices",
			UpdatedBy:   "system",
		}
		if err := db.Create(setting).Error; err != nil {
			return fmt.Errorf("failed to seed customization settings: %w", err)
		}
		logrus.Info("Default customization settings created")
	}

	logrus.Info("Initial data seeding completed")
	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
