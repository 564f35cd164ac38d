package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/seedpay/braintree-sync/internal/domain/gateway"
	"github.com/seedpay/braintree-sync/internal/domain/model"
	"github.com/seedpay/braintree-sync/internal/middleware/auth"
	"github.com/seedpay/braintree-sync/internal/usecase"
)

type TransactionHandler struct {
	transactions *usecase.TransactionService
	customers    *usecase.CustomerService
	validate     *validator.Validate
	logger       *zap.Logger
}

func NewTransactionHandler(transactions *usecase.TransactionService, customers *usecase.CustomerService, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		transactions: transactions,
		customers:    customers,
		validate:     validator.New(),
		logger:       logger,
	}
}

type saleRequest struct {
	Amount              string `json:"amount" validate:"required,numeric"`
	CustomerID          string `json:"customer_id" validate:"omitempty,max=100"`
	PaymentMethodNonce  string `json:"payment_method_nonce" validate:"omitempty,max=255"`
	MerchantAccountID   string `json:"merchant_account_id" validate:"omitempty,max=100"`
	HoldInEscrow        bool   `json:"hold_in_escrow"`
	SubmitForSettlement bool   `json:"submit_for_settlement"`
}

type refundRequest struct {
	Amount string `json:"amount" validate:"omitempty,numeric"`
}

// CreateSale creates a new charge at the gateway and mirrors it locally.
func (h *TransactionHandler) CreateSale(c echo.Context) error {
	var req saleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": err.Error(),
		})
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Amount must be a positive decimal",
		})
	}

	transaction, err := h.transactions.Sale(c.Request().Context(), &gateway.SaleRequest{
		Amount:              amount,
		CustomerID:          req.CustomerID,
		PaymentMethodNonce:  req.PaymentMethodNonce,
		MerchantAccountID:   req.MerchantAccountID,
		HoldInEscrow:        req.HoldInEscrow,
		SubmitForSettlement: req.SubmitForSettlement,
	})
	if err != nil {
		return gatewayErrorResponse(c, h.logger, "sale failed", err)
	}

	return c.JSON(http.StatusCreated, transaction)
}

// GetTransaction returns a mirrored transaction by its gateway id.
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	braintreeID := c.Param("braintree_id")

	transaction, err := h.transactions.Get(c.Request().Context(), braintreeID)
	if err != nil {
		h.logger.Error("failed to get transaction",
			zap.String("braintree_id", braintreeID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to get transaction",
		})
	}
	if transaction == nil {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Transaction not found",
		})
	}

	return c.JSON(http.StatusOK, transaction)
}

// ListTransactions returns the authenticated entity's mirrored transactions.
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	entity, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if offset < 0 {
		offset = 0
	}

	customer, err := h.customers.GetByEntity(c.Request().Context(), entity.EntityID)
	if err != nil {
		h.logger.Error("failed to resolve customer for entity",
			zap.String("entity_id", entity.EntityID.String()),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to list transactions",
		})
	}
	if customer == nil {
		return c.JSON(http.StatusOK, echo.Map{"transactions": []model.Transaction{}})
	}

	transactions, err := h.transactions.ListByCustomer(c.Request().Context(), customer.ID, limit, offset)
	if err != nil {
		h.logger.Error("failed to list transactions",
			zap.Int64("customer_id", customer.ID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to list transactions",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"transactions": transactions})
}

// Capture submits the transaction for settlement.
func (h *TransactionHandler) Capture(c echo.Context) error {
	return h.action(c, "capture", h.transactions.Capture)
}

// Void cancels the transaction.
func (h *TransactionHandler) Void(c echo.Context) error {
	return h.action(c, "void", h.transactions.Void)
}

// HoldInEscrow places the transaction's funds in escrow.
func (h *TransactionHandler) HoldInEscrow(c echo.Context) error {
	return h.action(c, "hold_in_escrow", h.transactions.HoldInEscrow)
}

// ReleaseFromEscrow schedules escrowed funds for release.
func (h *TransactionHandler) ReleaseFromEscrow(c echo.Context) error {
	return h.action(c, "release_from_escrow", h.transactions.ReleaseFromEscrow)
}

// CancelRelease cancels a pending escrow release.
func (h *TransactionHandler) CancelRelease(c echo.Context) error {
	return h.action(c, "cancel_release", h.transactions.CancelRelease)
}

// Refund refunds the transaction, fully when no amount is given. Requests
// above the remaining refundable balance are clamped.
func (h *TransactionHandler) Refund(c echo.Context) error {
	braintreeID := c.Param("braintree_id")

	var req refundRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": err.Error(),
		})
	}

	var amount *decimal.Decimal
	if req.Amount != "" {
		parsed, err := decimal.NewFromString(req.Amount)
		if err != nil || parsed.LessThanOrEqual(decimal.Zero) {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Amount must be a positive decimal",
			})
		}
		amount = &parsed
	}

	result, err := h.transactions.Refund(c.Request().Context(), braintreeID, amount)
	if err != nil {
		if errors.Is(err, usecase.ErrTransactionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Transaction not found",
			})
		}
		return gatewayErrorResponse(c, h.logger, "refund failed", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"transaction": result.Original,
		"credit":      result.Credit,
	})
}

func (h *TransactionHandler) action(
	c echo.Context,
	name string,
	call func(ctx context.Context, braintreeID string) (*model.Transaction, error),
) error {
	braintreeID := c.Param("braintree_id")

	transaction, err := call(c.Request().Context(), braintreeID)
	if err != nil {
		if errors.Is(err, usecase.ErrTransactionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Transaction not found",
			})
		}
		h.logger.Warn("transaction action rejected",
			zap.String("braintree_id", braintreeID),
			zap.String("action", name))
		return gatewayErrorResponse(c, h.logger, "transaction action failed", err)
	}

	return c.JSON(http.StatusOK, transaction)
}
