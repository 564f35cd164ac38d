package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/seedpay/braintree-sync/internal/domain/gateway"
	"github.com/seedpay/braintree-sync/internal/domain/model"
	"github.com/seedpay/braintree-sync/internal/domain/repository"
)

// SyncService upserts gateway objects into local rows, keyed on the gateway
// id. Syncing the same object twice yields identical stored state and never a
// duplicate row; concurrent syncs of the same id fall back on the unique
// constraint.
type SyncService struct {
	customers    repository.CustomerRepository
	transactions repository.TransactionRepository
	logger       *zap.Logger
}

// NewSyncService creates a new sync service
func NewSyncService(
	customers repository.CustomerRepository,
	transactions repository.TransactionRepository,
	logger *zap.Logger,
) *SyncService {
	return &SyncService{
		customers:    customers,
		transactions: transactions,
		logger:       logger,
	}
}

// SyncCustomer mirrors a gateway customer into a local row.
func (s *SyncService) SyncCustomer(ctx context.Context, obj *gateway.CustomerObject) (*model.Customer, error) {
	if obj == nil || obj.ID == "" {
		return nil, errors.New("customer object has no gateway id")
	}

	existing, err := s.customers.GetByBraintreeID(ctx, obj.ID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		row := &model.Customer{BraintreeID: obj.ID}
		applyCustomerFields(obj, row)
		if err := s.customers.Create(ctx, row); err != nil {
			return nil, err
		}
		s.logger.Info("customer mirrored",
			zap.String("braintree_id", obj.ID))
		return row, nil
	}

	applyCustomerFields(obj, existing)
	if err := s.customers.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// SyncTransaction mirrors a gateway transaction into a local row. A related
// customer embedded in the object is resolved or created first and linked, so
// the relation is never left dangling.
func (s *SyncService) SyncTransaction(ctx context.Context, obj *gateway.TransactionObject) (*model.Transaction, error) {
	if obj == nil || obj.ID == "" {
		return nil, errors.New("transaction object has no gateway id")
	}

	var customerID *int64
	if obj.Customer != nil && obj.Customer.ID != "" {
		customer, err := s.SyncCustomer(ctx, obj.Customer)
		if err != nil {
			return nil, err
		}
		customerID = &customer.ID
	}

	existing, err := s.transactions.GetByBraintreeID(ctx, obj.ID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		row := &model.Transaction{BraintreeID: obj.ID, CustomerID: customerID}
		applyTransactionFields(obj, row)
		if err := s.transactions.Create(ctx, row); err != nil {
			return nil, err
		}
		s.logger.Info("transaction mirrored",
			zap.String("braintree_id", obj.ID),
			zap.String("status", obj.Status))
		return row, nil
	}

	applyTransactionFields(obj, existing)
	if customerID != nil {
		existing.CustomerID = customerID
	}
	if err := s.transactions.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}
