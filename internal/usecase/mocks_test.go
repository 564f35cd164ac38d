package usecase_test

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/seedpay/braintree-sync/internal/domain/gateway"
	"github.com/seedpay/braintree-sync/internal/domain/model"
)

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *model.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Update(ctx context.Context, customer *model.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) GetByBraintreeID(ctx context.Context, braintreeID string) (*model.Customer, error) {
	args := m.Called(ctx, braintreeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerRepository) GetByEntityID(ctx context.Context, entityID uuid.UUID) (*model.Customer, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockTransactionRepository is a mock implementation of TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, transaction *model.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) Update(ctx context.Context, transaction *model.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByBraintreeID(ctx context.Context, braintreeID string) (*model.Transaction, error) {
	args := m.Called(ctx, braintreeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) GetByCustomerID(ctx context.Context, customerID int64, limit, offset int) ([]model.Transaction, error) {
	args := m.Called(ctx, customerID, limit, offset)
	return args.Get(0).([]model.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockGateway is a mock implementation of the gateway client
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateCustomer(ctx context.Context, req *gateway.CreateCustomerRequest) (*gateway.CustomerObject, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.CustomerObject), args.Error(1)
}

func (m *MockGateway) FindCustomer(ctx context.Context, customerID string) (*gateway.CustomerObject, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.CustomerObject), args.Error(1)
}

func (m *MockGateway) UpdateCustomer(ctx context.Context, customerID string, req *gateway.UpdateCustomerRequest) (*gateway.CustomerObject, error) {
	args := m.Called(ctx, customerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.CustomerObject), args.Error(1)
}

func (m *MockGateway) FindTransaction(ctx context.Context, transactionID string) (*gateway.TransactionObject, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.TransactionObject), args.Error(1)
}

func (m *MockGateway) Sale(ctx context.Context, req *gateway.SaleRequest) (*gateway.TransactionObject, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.TransactionObject), args.Error(1)
}

func (m *MockGateway) SubmitForSettlement(ctx context.Context, transactionID string) (*gateway.TransactionObject, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.TransactionObject), args.Error(1)
}

func (m *MockGateway) Refund(ctx context.Context, transactionID string, amount decimal.Decimal) (*gateway.TransactionObject, error) {
	args := m.Called(ctx, transactionID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.TransactionObject), args.Error(1)
}

func (m *MockGateway) Void(ctx context.Context, transactionID string) (*gateway.TransactionObject, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.TransactionObject), args.Error(1)
}

func (m *MockGateway) HoldInEscrow(ctx context.Context, transactionID string) (*gateway.TransactionObject, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.TransactionObject), args.Error(1)
}

func (m *MockGateway) ReleaseFromEscrow(ctx context.Context, transactionID string) (*gateway.TransactionObject, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.TransactionObject), args.Error(1)
}

func (m *MockGateway) CancelRelease(ctx context.Context, transactionID string) (*gateway.TransactionObject, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.TransactionObject), args.Error(1)
}

// MockWebhookRepository is a mock implementation of WebhookRepository
type MockWebhookRepository struct {
	mock.Mock
}

func (m *MockWebhookRepository) SaveEvent(ctx context.Context, eventID, kind string, payload json.RawMessage) error {
	args := m.Called(ctx, eventID, kind, payload)
	return args.Error(0)
}

func (m *MockWebhookRepository) GetEvent(ctx context.Context, eventID string) (*model.BraintreeWebhookEvent, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BraintreeWebhookEvent), args.Error(1)
}

func (m *MockWebhookRepository) MarkProcessed(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

func (m *MockWebhookRepository) MarkFailed(ctx context.Context, eventID string, err error) error {
	args := m.Called(ctx, eventID, err)
	return args.Error(0)
}

func (m *MockWebhookRepository) GetPendingEvents(ctx context.Context, limit int) ([]*model.BraintreeWebhookEvent, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*model.BraintreeWebhookEvent), args.Error(1)
}
