package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seedpay/braintree-sync/internal/domain/model"
	"github.com/seedpay/braintree-sync/internal/domain/repository"
)

type transactionRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB, logger *zap.Logger) repository.TransactionRepository {
	return &transactionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *transactionRepository) Create(ctx context.Context, transaction *model.Transaction) error {
	if err := r.db.WithContext(ctx).Create(transaction).Error; err != nil {
		r.logger.Error("failed to create transaction",
			zap.String("braintree_id", transaction.BraintreeID),
			zap.Error(err))
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *transactionRepository) Update(ctx context.Context, transaction *model.Transaction) error {
	if err := r.db.WithContext(ctx).Save(transaction).Error; err != nil {
		r.logger.Error("failed to update transaction",
			zap.String("braintree_id", transaction.BraintreeID),
			zap.Error(err))
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return nil
}

func (r *transactionRepository) GetByBraintreeID(ctx context.Context, braintreeID string) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.WithContext(ctx).Where("braintree_id = ?", braintreeID).First(&transaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("failed to get transaction",
			zap.String("braintree_id", braintreeID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &transaction, nil
}

func (r *transactionRepository) GetByCustomerID(ctx context.Context, customerID int64, limit, offset int) ([]model.Transaction, error) {
	var transactions []model.Transaction

	query := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	if err := query.Find(&transactions).Error; err != nil {
		r.logger.Error("failed to get customer transactions",
			zap.Int64("customer_id", customerID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get customer transactions: %w", err)
	}

	return transactions, nil
}

func (r *transactionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Transaction{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}
