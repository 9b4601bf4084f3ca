// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vendora/vendora-backend/internal/config"
	"github.com/vendora/vendora-backend/internal/models"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error

	// TranslateError turns driver duplicate-key failures into
	// gorm.ErrDuplicatedKey, which the store layer relies on.
	gormConfig := &gorm.Config{
		TranslateError: true,
	}
	if cfg.LogLevel == "silent" {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	// Connect to database
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return DB, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	// gen_random_uuid() needs pgcrypto on PostgreSQL < 13
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"pgcrypto\"").Error; err != nil {
		return fmt.Errorf("failed to create pgcrypto extension: %w", err)
	}

	// Run auto-migrations
	err := db.AutoMigrate(
		&models.User{},
		&models.Wallet{},
		&models.WalletTransaction{},
		&models.PlatformConfig{},
		&models.Product{},
		&models.Purchase{},
		&models.SellerAccount{},
		&models.Review{},
		&models.AuditLog{},
		&models.Notification{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_seller_active ON products(seller_id, active)",
		"CREATE INDEX IF NOT EXISTS idx_products_category_active ON products(category, active)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		// Purchase indexes
		"CREATE INDEX IF NOT EXISTS idx_purchases_buyer_created ON purchases(buyer_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_purchases_product_created ON purchases(product_id, created_at DESC)",

		// Ledger indexes
		"CREATE INDEX IF NOT EXISTS idx_wallet_txns_owner_created ON wallet_transactions(owner_id, created_at DESC)",
		// Deposit references are external payment ids; the partial unique
		// index is what makes top-up confirmation idempotent under races.
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_wallet_txns_deposit_ref ON wallet_transactions(reference) WHERE kind = 'deposit' AND reference <> ''",

		// Review indexes
		"CREATE INDEX IF NOT EXISTS idx_reviews_product_updated ON reviews(product_id, updated_at DESC)",

		// Audit and notification indexes
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_user_action ON audit_logs(user_id, action)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_notifications_user_created ON notifications(user_id, created_at DESC)",

		// Full-text search index
		"CREATE INDEX IF NOT EXISTS idx_products_search ON products USING GIN(to_tsvector('english', title || ' ' || description))",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// SeedInitialData creates the rows the marketplace cannot run without: the
// platform configuration, the operator account with its wallet, and the
// custodial treasury wallet.
func SeedInitialData(db *gorm.DB, cfg *config.Config) error {
	log.Println("Seeding initial data...")

	// Platform configuration row
	var configCount int64
	db.Model(&models.PlatformConfig{}).Where("id = ?", models.PlatformConfigID).Count(&configCount)

	if configCount == 0 {
		platformConfig := &models.PlatformConfig{
			ID:             models.PlatformConfigID,
			FeeBasisPoints: cfg.Platform.FeeBasisPoints,
			NextProductID:  1,
		}
		if err := db.Create(platformConfig).Error; err != nil {
			return fmt.Errorf("failed to create platform config: %w", err)
		}
		log.Println("Platform config created successfully")
	}

	// Operator account
	var operatorCount int64
	db.Model(&models.User{}).Where("id = ?", cfg.Platform.OperatorID).Count(&operatorCount)

	if operatorCount == 0 {
		operator := &models.User{
			BaseModel: models.BaseModel{ID: cfg.Platform.OperatorID},
			Username:  "operator",
			Email:     "operator@vendora.dev",
			Status:    models.UserStatusActive,
		}

		if err := operator.SetPassword("operator123!@#"); err != nil {
			return fmt.Errorf("failed to set operator password: %w", err)
		}

		if err := db.Create(operator).Error; err != nil {
			return fmt.Errorf("failed to create operator user: %w", err)
		}

		log.Println("Default operator user created successfully")
	}

	// Operator wallet and the custodial treasury wallet
	for _, ownerID := range []uuid.UUID{cfg.Platform.OperatorID, cfg.Platform.TreasuryID} {
		var walletCount int64
		db.Model(&models.Wallet{}).Where("owner_id = ?", ownerID).Count(&walletCount)

		if walletCount == 0 {
			if err := db.Create(&models.Wallet{OwnerID: ownerID}).Error; err != nil {
				return fmt.Errorf("failed to create wallet for %s: %w", ownerID, err)
			}
		}
	}

	log.Println("Initial data seeding completed")
	return nil
}
