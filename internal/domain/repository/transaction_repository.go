package repository

import (
	"context"

	"github.com/seedpay/braintree-sync/internal/domain/model"
)

// TransactionRepository persists mirrored gateway transactions. Lookups
// return (nil, nil) when no row exists.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *model.Transaction) error
	Update(ctx context.Context, transaction *model.Transaction) error
	GetByBraintreeID(ctx context.Context, braintreeID string) (*model.Transaction, error)
	GetByCustomerID(ctx context.Context, customerID int64, limit, offset int) ([]model.Transaction, error)
	Count(ctx context.Context) (int64, error)
}
