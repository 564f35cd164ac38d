package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/seedpay/braintree-sync/internal/domain/gateway"
	"github.com/seedpay/braintree-sync/internal/domain/model"
	"github.com/seedpay/braintree-sync/internal/usecase"
)

func newTransactionService(
	mockCustomers *MockCustomerRepository,
	mockTransactions *MockTransactionRepository,
	mockGateway *MockGateway,
) *usecase.TransactionService {
	logger := zap.NewNop()
	sync := usecase.NewSyncService(mockCustomers, mockTransactions, logger)
	return usecase.NewTransactionService(mockTransactions, mockGateway, sync, logger)
}

func TestTransactionService_Sale(t *testing.T) {
	ctx := context.Background()

	t.Run("successful sale is mirrored locally", func(t *testing.T) {
		mockCustomers := new(MockCustomerRepository)
		mockTransactions := new(MockTransactionRepository)
		mockGateway := new(MockGateway)
		service := newTransactionService(mockCustomers, mockTransactions, mockGateway)

		req := &gateway.SaleRequest{
			Amount:              decimal.NewFromFloat(25.00),
			CustomerID:          "cust_1",
			SubmitForSettlement: true,
		}
		obj := &gateway.TransactionObject{
			ID:              "txn_sale",
			Amount:          decimal.NewFromFloat(25.00),
			Status:          "submitted_for_settlement",
			Type:            "sale",
			CurrencyISOCode: "USD",
		}

		mockGateway.On("Sale", ctx, req).Return(obj, nil)
		mockTransactions.On("GetByBraintreeID", ctx, "txn_sale").Return(nil, nil)
		mockTransactions.On("Create", ctx, mock.AnythingOfType("*model.Transaction")).Return(nil)

		transaction, err := service.Sale(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, "txn_sale", transaction.BraintreeID)
		assert.Equal(t, model.TransactionTypeSale, transaction.TransactionType)

		mockGateway.AssertExpectations(t)
		mockTransactions.AssertExpectations(t)
	})

	t.Run("gateway decline writes nothing locally", func(t *testing.T) {
		mockCustomers := new(MockCustomerRepository)
		mockTransactions := new(MockTransactionRepository)
		mockGateway := new(MockGateway)
		service := newTransactionService(mockCustomers, mockTransactions, mockGateway)

		req := &gateway.SaleRequest{Amount: decimal.NewFromFloat(25.00)}
		gwErr := &gateway.GatewayError{Code: "2000", Message: "Do Not Honor"}

		mockGateway.On("Sale", ctx, req).Return(nil, gwErr)

		transaction, err := service.Sale(ctx, req)

		assert.Nil(t, transaction)
		assert.ErrorIs(t, err, gwErr)
		mockTransactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		mockTransactions.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)

		mockGateway.AssertExpectations(t)
	})
}

func TestTransactionService_Refund(t *testing.T) {
	ctx := context.Background()

	sale := func() *model.Transaction {
		return &model.Transaction{
			ID:              1,
			BraintreeID:     "txn_sale",
			Amount:          decimal.NewFromFloat(10.00),
			Status:          model.TransactionStatusSettled,
			TransactionType: model.TransactionTypeSale,
		}
	}

	saleObj := &gateway.TransactionObject{
		ID:              "txn_sale",
		Amount:          decimal.NewFromFloat(10.00),
		Status:          "settled",
		Type:            "sale",
		CurrencyISOCode: "USD",
	}

	t.Run("partial refund creates a credit row and advances the refunded total", func(t *testing.T) {
		mockCustomers := new(MockCustomerRepository)
		mockTransactions := new(MockTransactionRepository)
		mockGateway := new(MockGateway)
		service := newTransactionService(mockCustomers, mockTransactions, mockGateway)

		original := sale()
		amount := decimal.NewFromFloat(8.00)
		creditObj := &gateway.TransactionObject{
			ID:                    "txn_credit",
			Amount:                decimal.NewFromFloat(8.00),
			Status:                "submitted_for_settlement",
			Type:                  "credit",
			CurrencyISOCode:       "USD",
			RefundedTransactionID: "txn_sale",
		}

		mockTransactions.On("GetByBraintreeID", ctx, "txn_sale").Return(original, nil)
		mockGateway.On("Refund", ctx, "txn_sale", amount).Return(creditObj, nil)
		mockGateway.On("FindTransaction", ctx, "txn_sale").Return(saleObj, nil)
		mockTransactions.On("Update", ctx, original).Return(nil)
		mockTransactions.On("GetByBraintreeID", ctx, "txn_credit").Return(nil, nil)
		mockTransactions.On("Create", ctx, mock.AnythingOfType("*model.Transaction")).Return(nil)

		result, err := service.Refund(ctx, "txn_sale", &amount)

		assert.NoError(t, err)
		assert.Equal(t, "txn_sale", result.Original.BraintreeID)
		assert.Equal(t, model.TransactionTypeSale, result.Original.TransactionType)
		assert.NotNil(t, result.Original.AmountRefunded)
		assert.True(t, result.Original.AmountRefunded.Equal(decimal.NewFromFloat(8.00)))

		assert.Equal(t, "txn_credit", result.Credit.BraintreeID)
		assert.Equal(t, model.TransactionTypeCredit, result.Credit.TransactionType)
		assert.True(t, result.Credit.Amount.Equal(decimal.NewFromFloat(8.00)))
		assert.NotNil(t, result.Credit.RefundedTransactionID)
		assert.Equal(t, "txn_sale", *result.Credit.RefundedTransactionID)

		mockGateway.AssertExpectations(t)
		mockTransactions.AssertExpectations(t)
	})

	t.Run("nil amount refunds the full remaining balance", func(t *testing.T) {
		mockCustomers := new(MockCustomerRepository)
		mockTransactions := new(MockTransactionRepository)
		mockGateway := new(MockGateway)
		service := newTransactionService(mockCustomers, mockTransactions, mockGateway)

		original := sale()
		creditObj := &gateway.TransactionObject{
			ID:     "txn_credit",
			Amount: decimal.NewFromFloat(10.00),
			Status: "submitted_for_settlement",
			Type:   "credit",
		}

		mockTransactions.On("GetByBraintreeID", ctx, "txn_sale").Return(original, nil)
		mockGateway.On("Refund", ctx, "txn_sale", decimal.NewFromFloat(10.00)).Return(creditObj, nil)
		mockGateway.On("FindTransaction", ctx, "txn_sale").Return(saleObj, nil)
		mockTransactions.On("Update", ctx, original).Return(nil)
		mockTransactions.On("GetByBraintreeID", ctx, "txn_credit").Return(nil, nil)
		mockTransactions.On("Create", ctx, mock.AnythingOfType("*model.Transaction")).Return(nil)

		result, err := service.Refund(ctx, "txn_sale", nil)

		assert.NoError(t, err)
		assert.True(t, result.Original.AmountRefunded.Equal(decimal.NewFromFloat(10.00)))

		mockGateway.AssertExpectations(t)
	})

	t.Run("over-refund is clamped to the remaining balance", func(t *testing.T) {
		mockCustomers := new(MockCustomerRepository)
		mockTransactions := new(MockTransactionRepository)
		mockGateway := new(MockGateway)
		service := newTransactionService(mockCustomers, mockTransactions, mockGateway)

		original := sale()
		prior := decimal.NewFromFloat(5.00)
		original.AmountRefunded = &prior

		requested := decimal.NewFromFloat(6.00)
		creditObj := &gateway.TransactionObject{
			ID:     "txn_credit",
			Amount: decimal.NewFromFloat(5.00),
			Status: "submitted_for_settlement",
			Type:   "credit",
		}

		mockTransactions.On("GetByBraintreeID", ctx, "txn_sale").Return(original, nil)
		// Only the remaining 5.00 goes to the gateway.
		mockGateway.On("Refund", ctx, "txn_sale", decimal.NewFromFloat(5.00)).Return(creditObj, nil)
		mockGateway.On("FindTransaction", ctx, "txn_sale").Return(saleObj, nil)
		mockTransactions.On("Update", ctx, original).Return(nil)
		mockTransactions.On("GetByBraintreeID", ctx, "txn_credit").Return(nil, nil)
		mockTransactions.On("Create", ctx, mock.AnythingOfType("*model.Transaction")).Return(nil)

		result, err := service.Refund(ctx, "txn_sale", &requested)

		assert.NoError(t, err)
		assert.True(t, result.Original.AmountRefunded.Equal(decimal.NewFromFloat(10.00)))

		mockGateway.AssertExpectations(t)
	})

	t.Run("unknown transaction returns not found", func(t *testing.T) {
		mockCustomers := new(MockCustomerRepository)
		mockTransactions := new(MockTransactionRepository)
		mockGateway := new(MockGateway)
		service := newTransactionService(mockCustomers, mockTransactions, mockGateway)

		mockTransactions.On("GetByBraintreeID", ctx, "txn_missing").Return(nil, nil)

		result, err := service.Refund(ctx, "txn_missing", nil)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, usecase.ErrTransactionNotFound)
		mockGateway.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("gateway refusal writes nothing locally", func(t *testing.T) {
		mockCustomers := new(MockCustomerRepository)
		mockTransactions := new(MockTransactionRepository)
		mockGateway := new(MockGateway)
		service := newTransactionService(mockCustomers, mockTransactions, mockGateway)

		original := sale()
		gwErr := &gateway.GatewayError{Code: "91506", Message: "Cannot refund a transaction unless it is settled"}

		mockTransactions.On("GetByBraintreeID", ctx, "txn_sale").Return(original, nil)
		mockGateway.On("Refund", ctx, "txn_sale", decimal.NewFromFloat(10.00)).Return(nil, gwErr)

		result, err := service.Refund(ctx, "txn_sale", nil)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, gwErr)
		assert.Nil(t, original.AmountRefunded)
		mockTransactions.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		mockTransactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

		mockGateway.AssertExpectations(t)
	})
}

func TestTransactionService_Void(t *testing.T) {
	ctx := context.Background()

	t.Run("void updates the mirrored row without a duplicate", func(t *testing.T) {
		mockCustomers := new(MockCustomerRepository)
		mockTransactions := new(MockTransactionRepository)
		mockGateway := new(MockGateway)
		service := newTransactionService(mockCustomers, mockTransactions, mockGateway)

		existing := &model.Transaction{
			ID:          1,
			BraintreeID: "txn_auth",
			Amount:      decimal.NewFromFloat(15.00),
			Status:      model.TransactionStatusAuthorized,
		}
		voidedObj := &gateway.TransactionObject{
			ID:     "txn_auth",
			Amount: decimal.NewFromFloat(15.00),
			Status: "voided",
			Type:   "sale",
		}

		mockTransactions.On("GetByBraintreeID", ctx, "txn_auth").Return(existing, nil)
		mockGateway.On("Void", ctx, "txn_auth").Return(voidedObj, nil)
		mockTransactions.On("Update", ctx, existing).Return(nil)

		transaction, err := service.Void(ctx, "txn_auth")

		assert.NoError(t, err)
		assert.Equal(t, int64(1), transaction.ID)
		assert.Equal(t, model.TransactionStatusVoided, transaction.Status)
		mockTransactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

		mockGateway.AssertExpectations(t)
		mockTransactions.AssertExpectations(t)
	})

	t.Run("unknown transaction returns not found", func(t *testing.T) {
		mockCustomers := new(MockCustomerRepository)
		mockTransactions := new(MockTransactionRepository)
		mockGateway := new(MockGateway)
		service := newTransactionService(mockCustomers, mockTransactions, mockGateway)

		mockTransactions.On("GetByBraintreeID", ctx, "txn_missing").Return(nil, nil)

		_, err := service.Void(ctx, "txn_missing")

		assert.ErrorIs(t, err, usecase.ErrTransactionNotFound)
		mockGateway.AssertNotCalled(t, "Void", mock.Anything, mock.Anything)
	})
}

func TestTransactionService_Escrow(t *testing.T) {
	ctx := context.Background()

	existing := func() *model.Transaction {
		held := model.EscrowStatusHeld
		return &model.Transaction{
			ID:           1,
			BraintreeID:  "txn_market",
			Amount:       decimal.NewFromFloat(50.00),
			Status:       model.TransactionStatusSettled,
			EscrowStatus: &held,
		}
	}

	objWithEscrow := func(status string) *gateway.TransactionObject {
		return &gateway.TransactionObject{
			ID:           "txn_market",
			Amount:       decimal.NewFromFloat(50.00),
			Status:       "settled",
			Type:         "sale",
			EscrowStatus: status,
		}
	}

	t.Run("release moves held funds to release_pending", func(t *testing.T) {
		mockCustomers := new(MockCustomerRepository)
		mockTransactions := new(MockTransactionRepository)
		mockGateway := new(MockGateway)
		service := newTransactionService(mockCustomers, mockTransactions, mockGateway)

		row := existing()
		mockTransactions.On("GetByBraintreeID", ctx, "txn_market").Return(row, nil)
		mockGateway.On("ReleaseFromEscrow", ctx, "txn_market").Return(objWithEscrow("release_pending"), nil)
		mockTransactions.On("Update", ctx, row).Return(nil)

		transaction, err := service.ReleaseFromEscrow(ctx, "txn_market")

		assert.NoError(t, err)
		assert.NotNil(t, transaction.EscrowStatus)
		assert.Equal(t, model.EscrowStatusReleasePending, *transaction.EscrowStatus)

		mockGateway.AssertExpectations(t)
	})

	t.Run("cancel release returns funds to held", func(t *testing.T) {
		mockCustomers := new(MockCustomerRepository)
		mockTransactions := new(MockTransactionRepository)
		mockGateway := new(MockGateway)
		service := newTransactionService(mockCustomers, mockTransactions, mockGateway)

		pending := model.EscrowStatusReleasePending
		row := existing()
		row.EscrowStatus = &pending

		mockTransactions.On("GetByBraintreeID", ctx, "txn_market").Return(row, nil)
		mockGateway.On("CancelRelease", ctx, "txn_market").Return(objWithEscrow("held"), nil)
		mockTransactions.On("Update", ctx, row).Return(nil)

		transaction, err := service.CancelRelease(ctx, "txn_market")

		assert.NoError(t, err)
		assert.Equal(t, model.EscrowStatusHeld, *transaction.EscrowStatus)

		mockGateway.AssertExpectations(t)
	})

	t.Run("hold places settled funds in escrow", func(t *testing.T) {
		mockCustomers := new(MockCustomerRepository)
		mockTransactions := new(MockTransactionRepository)
		mockGateway := new(MockGateway)
		service := newTransactionService(mockCustomers, mockTransactions, mockGateway)

		row := existing()
		row.EscrowStatus = nil

		mockTransactions.On("GetByBraintreeID", ctx, "txn_market").Return(row, nil)
		mockGateway.On("HoldInEscrow", ctx, "txn_market").Return(objWithEscrow("hold_pending"), nil)
		mockTransactions.On("Update", ctx, row).Return(nil)

		transaction, err := service.HoldInEscrow(ctx, "txn_market")

		assert.NoError(t, err)
		assert.Equal(t, model.EscrowStatusHoldPending, *transaction.EscrowStatus)

		mockGateway.AssertExpectations(t)
	})
}

func TestTransactionService_Capture(t *testing.T) {
	ctx := context.Background()

	t.Run("capture submits for settlement and resyncs", func(t *testing.T) {
		mockCustomers := new(MockCustomerRepository)
		mockTransactions := new(MockTransactionRepository)
		mockGateway := new(MockGateway)
		service := newTransactionService(mockCustomers, mockTransactions, mockGateway)

		existing := &model.Transaction{
			ID:          1,
			BraintreeID: "txn_auth",
			Amount:      decimal.NewFromFloat(20.00),
			Status:      model.TransactionStatusAuthorized,
		}
		capturedObj := &gateway.TransactionObject{
			ID:     "txn_auth",
			Amount: decimal.NewFromFloat(20.00),
			Status: "submitted_for_settlement",
			Type:   "sale",
		}

		mockTransactions.On("GetByBraintreeID", ctx, "txn_auth").Return(existing, nil)
		mockGateway.On("SubmitForSettlement", ctx, "txn_auth").Return(capturedObj, nil)
		mockTransactions.On("Update", ctx, existing).Return(nil)

		transaction, err := service.Capture(ctx, "txn_auth")

		assert.NoError(t, err)
		assert.Equal(t, model.TransactionStatusSubmittedForSettlement, transaction.Status)

		mockGateway.AssertExpectations(t)
		mockTransactions.AssertExpectations(t)
	})
}
