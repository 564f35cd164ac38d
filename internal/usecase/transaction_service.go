package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/seedpay/braintree-sync/internal/domain/gateway"
	"github.com/seedpay/braintree-sync/internal/domain/model"
	"github.com/seedpay/braintree-sync/internal/domain/repository"
)

// ErrTransactionNotFound is returned when an action targets a gateway id
// with no local row.
var ErrTransactionNotFound = errors.New("transaction not found")

// RefundResult carries the two rows a refund touches: the refreshed original
// sale and the new credit transaction.
type RefundResult struct {
	Original *model.Transaction
	Credit   *model.Transaction
}

// TransactionService forwards actions to the gateway and syncs the results
// back. A gateway failure is returned unchanged with no local write.
type TransactionService struct {
	transactions repository.TransactionRepository
	gateway      gateway.Gateway
	sync         *SyncService
	logger       *zap.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	transactions repository.TransactionRepository,
	gw gateway.Gateway,
	sync *SyncService,
	logger *zap.Logger,
) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		gateway:      gw,
		sync:         sync,
		logger:       logger,
	}
}

// Get returns the mirrored transaction for a gateway id, or nil when unknown.
func (s *TransactionService) Get(ctx context.Context, braintreeID string) (*model.Transaction, error) {
	return s.transactions.GetByBraintreeID(ctx, braintreeID)
}

// ListByCustomer returns a customer's mirrored transactions.
func (s *TransactionService) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]model.Transaction, error) {
	return s.transactions.GetByCustomerID(ctx, customerID, limit, offset)
}

// Sale creates a new charge at the gateway and mirrors it locally.
func (s *TransactionService) Sale(ctx context.Context, req *gateway.SaleRequest) (*model.Transaction, error) {
	obj, err := s.gateway.Sale(ctx, req)
	if err != nil {
		s.logger.Error("gateway sale failed", zap.Error(err))
		return nil, err
	}
	return s.sync.SyncTransaction(ctx, obj)
}

// Capture submits an authorized transaction for settlement.
func (s *TransactionService) Capture(ctx context.Context, braintreeID string) (*model.Transaction, error) {
	return s.forward(ctx, braintreeID, "capture", s.gateway.SubmitForSettlement)
}

// Void cancels a transaction that has not settled.
func (s *TransactionService) Void(ctx context.Context, braintreeID string) (*model.Transaction, error) {
	return s.forward(ctx, braintreeID, "void", s.gateway.Void)
}

// HoldInEscrow places the transaction's funds in escrow.
func (s *TransactionService) HoldInEscrow(ctx context.Context, braintreeID string) (*model.Transaction, error) {
	return s.forward(ctx, braintreeID, "hold_in_escrow", s.gateway.HoldInEscrow)
}

// ReleaseFromEscrow schedules escrowed funds for release.
func (s *TransactionService) ReleaseFromEscrow(ctx context.Context, braintreeID string) (*model.Transaction, error) {
	return s.forward(ctx, braintreeID, "release_from_escrow", s.gateway.ReleaseFromEscrow)
}

// CancelRelease cancels a pending escrow release; the funds stay held.
func (s *TransactionService) CancelRelease(ctx context.Context, braintreeID string) (*model.Transaction, error) {
	return s.forward(ctx, braintreeID, "cancel_release", s.gateway.CancelRelease)
}

// Refund refunds the transaction, fully when amount is nil. A request above
// the remaining refundable balance is clamped, not rejected. On success the
// refreshed original and the new credit transaction are both mirrored, and
// the original's refunded total is advanced by the applied amount.
func (s *TransactionService) Refund(ctx context.Context, braintreeID string, amount *decimal.Decimal) (*RefundResult, error) {
	transaction, err := s.transactions.GetByBraintreeID(ctx, braintreeID)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, ErrTransactionNotFound
	}

	eligible := transaction.MaxRefund(amount)

	credit, err := s.gateway.Refund(ctx, transaction.BraintreeID, eligible)
	if err != nil {
		s.logger.Error("gateway refund failed",
			zap.String("braintree_id", braintreeID),
			zap.String("amount", eligible.String()),
			zap.Error(err))
		return nil, err
	}

	originalObj, err := s.gateway.FindTransaction(ctx, transaction.BraintreeID)
	if err != nil {
		return nil, err
	}

	original, err := s.sync.SyncTransaction(ctx, originalObj)
	if err != nil {
		return nil, err
	}

	refunded := eligible
	if original.AmountRefunded != nil {
		refunded = original.AmountRefunded.Add(eligible)
	}
	original.AmountRefunded = &refunded
	if err := s.transactions.Update(ctx, original); err != nil {
		return nil, err
	}

	syncedCredit, err := s.sync.SyncTransaction(ctx, credit)
	if err != nil {
		return nil, err
	}

	s.logger.Info("transaction refunded",
		zap.String("braintree_id", braintreeID),
		zap.String("credit_id", syncedCredit.BraintreeID),
		zap.String("amount", eligible.String()))

	return &RefundResult{Original: original, Credit: syncedCredit}, nil
}

func (s *TransactionService) forward(
	ctx context.Context,
	braintreeID string,
	action string,
	call func(ctx context.Context, transactionID string) (*gateway.TransactionObject, error),
) (*model.Transaction, error) {
	transaction, err := s.transactions.GetByBraintreeID(ctx, braintreeID)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, ErrTransactionNotFound
	}

	obj, err := call(ctx, transaction.BraintreeID)
	if err != nil {
		s.logger.Error("gateway action failed",
			zap.String("braintree_id", braintreeID),
			zap.String("action", action),
			zap.Error(err))
		return nil, err
	}

	return s.sync.SyncTransaction(ctx, obj)
}
