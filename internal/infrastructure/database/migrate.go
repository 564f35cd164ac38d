package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seedpay/braintree-sync/internal/domain/model"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	if err := createExtensions(db); err != nil {
		logger.Error("Failed to create extensions", zap.Error(err))
		return err
	}

	// Custom types must exist before auto-migrate references them
	if err := createCustomTypes(db); err != nil {
		logger.Error("Failed to create custom types", zap.Error(err))
		return err
	}

	err := db.AutoMigrate(
		&model.Customer{},
		&model.Transaction{},
		&model.BraintreeWebhookEvent{},
	)
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	if err := createCustomIndexes(db); err != nil {
		logger.Error("Failed to create custom indexes", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// createCustomIndexes creates indexes GORM doesn't handle automatically
func createCustomIndexes(db *gorm.DB) error {
	// Credit rows point back at the sale they refund
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_transactions_refunded_transaction_id ON transactions (refunded_transaction_id) WHERE refunded_transaction_id IS NOT NULL`).Error; err != nil {
		return err
	}

	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_webhook_events_unprocessed ON braintree_webhook_events (created_at) WHERE status IN ('pending', 'failed')`).Error; err != nil {
		return err
	}

	return nil
}

// createExtensions creates required PostgreSQL extensions
func createExtensions(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}
	return nil
}

// createCustomTypes creates custom PostgreSQL types
func createCustomTypes(db *gorm.DB) error {
	var exists bool

	db.Raw(`SELECT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'transaction_status')`).Scan(&exists)
	if !exists {
		if err := db.Exec(`CREATE TYPE transaction_status AS ENUM ('authorizing', 'authorized', 'submitted_for_settlement', 'settling', 'settled', 'voided', 'processor_declined', 'gateway_rejected', 'failed')`).Error; err != nil {
			return err
		}
	}

	db.Raw(`SELECT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'transaction_kind')`).Scan(&exists)
	if !exists {
		if err := db.Exec(`CREATE TYPE transaction_kind AS ENUM ('sale', 'credit')`).Error; err != nil {
			return err
		}
	}

	db.Raw(`SELECT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'escrow_status')`).Scan(&exists)
	if !exists {
		if err := db.Exec(`CREATE TYPE escrow_status AS ENUM ('hold_pending', 'held', 'release_pending', 'released')`).Error; err != nil {
			return err
		}
	}

	db.Raw(`SELECT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'webhook_status')`).Scan(&exists)
	if !exists {
		if err := db.Exec(`CREATE TYPE webhook_status AS ENUM ('pending', 'processing', 'completed', 'failed')`).Error; err != nil {
			return err
		}
	}

	return nil
}
