package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/seedpay/braintree-sync/internal/domain/model"
)

// CustomerRepository persists mirrored gateway customers. Lookups return
// (nil, nil) when no row exists.
type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) error
	Update(ctx context.Context, customer *model.Customer) error
	GetByBraintreeID(ctx context.Context, braintreeID string) (*model.Customer, error)
	GetByEntityID(ctx context.Context, entityID uuid.UUID) (*model.Customer, error)
	Count(ctx context.Context) (int64, error)
}
