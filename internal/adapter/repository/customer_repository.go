package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seedpay/braintree-sync/internal/domain/model"
	"github.com/seedpay/braintree-sync/internal/domain/repository"
)

type customerRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB, logger *zap.Logger) repository.CustomerRepository {
	return &customerRepository{
		db:     db,
		logger: logger,
	}
}

func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) error {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		r.logger.Error("failed to create customer",
			zap.String("braintree_id", customer.BraintreeID),
			zap.Error(err))
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (r *customerRepository) Update(ctx context.Context, customer *model.Customer) error {
	if err := r.db.WithContext(ctx).Save(customer).Error; err != nil {
		r.logger.Error("failed to update customer",
			zap.String("braintree_id", customer.BraintreeID),
			zap.Error(err))
		return fmt.Errorf("failed to update customer: %w", err)
	}
	return nil
}

func (r *customerRepository) GetByBraintreeID(ctx context.Context, braintreeID string) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.WithContext(ctx).Where("braintree_id = ?", braintreeID).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("failed to get customer",
			zap.String("braintree_id", braintreeID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &customer, nil
}

func (r *customerRepository) GetByEntityID(ctx context.Context, entityID uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.WithContext(ctx).Where("entity_id = ?", entityID).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("failed to get customer by entity",
			zap.String("entity_id", entityID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get customer by entity: %w", err)
	}
	return &customer, nil
}

func (r *customerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Customer{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}
