package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seedpay/braintree-sync/internal/domain/gateway"
	"github.com/seedpay/braintree-sync/internal/domain/model"
	"github.com/seedpay/braintree-sync/internal/domain/repository"
)

// CustomerService manages the link between local payer entities and their
// mirrored gateway customers.
type CustomerService struct {
	customers repository.CustomerRepository
	gateway   gateway.Gateway
	sync      *SyncService
	logger    *zap.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(
	customers repository.CustomerRepository,
	gw gateway.Gateway,
	sync *SyncService,
	logger *zap.Logger,
) *CustomerService {
	return &CustomerService{
		customers: customers,
		gateway:   gw,
		sync:      sync,
		logger:    logger,
	}
}

// GetOrCreate returns the customer owned by the given entity, creating one at
// the gateway on first use. The boolean reports whether a new customer was
// created. A missing local row is the create path, not an error.
func (s *CustomerService) GetOrCreate(ctx context.Context, entityID uuid.UUID, req *gateway.CreateCustomerRequest) (*model.Customer, bool, error) {
	existing, err := s.customers.GetByEntityID(ctx, entityID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	customer, err := s.Create(ctx, entityID, req)
	if err != nil {
		return nil, false, err
	}
	return customer, true, nil
}

// Create registers a customer with the gateway, then mirrors the response
// and links it to the owning entity. A gateway failure leaves no local row.
func (s *CustomerService) Create(ctx context.Context, entityID uuid.UUID, req *gateway.CreateCustomerRequest) (*model.Customer, error) {
	obj, err := s.gateway.CreateCustomer(ctx, req)
	if err != nil {
		s.logger.Error("gateway customer create failed",
			zap.String("entity_id", entityID.String()),
			zap.Error(err))
		return nil, err
	}

	customer, err := s.sync.SyncCustomer(ctx, obj)
	if err != nil {
		return nil, err
	}

	customer.EntityID = &entityID
	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("customer created",
		zap.String("braintree_id", customer.BraintreeID),
		zap.String("entity_id", entityID.String()))
	return customer, nil
}

// Update pushes profile changes to the gateway and re-syncs the result.
func (s *CustomerService) Update(ctx context.Context, braintreeID string, req *gateway.UpdateCustomerRequest) (*model.Customer, error) {
	obj, err := s.gateway.UpdateCustomer(ctx, braintreeID, req)
	if err != nil {
		return nil, err
	}
	return s.sync.SyncCustomer(ctx, obj)
}

// Get returns the mirrored customer for a gateway id, or nil when unknown.
func (s *CustomerService) Get(ctx context.Context, braintreeID string) (*model.Customer, error) {
	return s.customers.GetByBraintreeID(ctx, braintreeID)
}

// GetByEntity returns the customer owned by an entity, or nil when none exists.
func (s *CustomerService) GetByEntity(ctx context.Context, entityID uuid.UUID) (*model.Customer, error) {
	return s.customers.GetByEntityID(ctx, entityID)
}
