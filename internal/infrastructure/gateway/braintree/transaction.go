package braintree

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/seedpay/braintree-sync/internal/domain/gateway"
)

// transactionEnvelope wraps transaction responses.
type transactionEnvelope struct {
	Transaction gateway.TransactionObject `json:"transaction"`
}

// FindTransaction fetches a transaction by gateway id.
// GET /merchants/{merchant_id}/v1/transactions/{id}
func (c *Client) FindTransaction(ctx context.Context, transactionID string) (*gateway.TransactionObject, error) {
	var resp transactionEnvelope
	if err := c.do(ctx, http.MethodGet, "transactions/"+transactionID, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Transaction, nil
}

// Sale creates a new sale transaction.
// POST /merchants/{merchant_id}/v1/transactions
func (c *Client) Sale(ctx context.Context, req *gateway.SaleRequest) (*gateway.TransactionObject, error) {
	var resp transactionEnvelope
	body := map[string]interface{}{
		"transaction": map[string]interface{}{
			"type":                  "sale",
			"amount":                req.Amount.StringFixed(2),
			"customer_id":           req.CustomerID,
			"payment_method_nonce":  req.PaymentMethodNonce,
			"merchant_account_id":   req.MerchantAccountID,
			"hold_in_escrow":        req.HoldInEscrow,
			"submit_for_settlement": req.SubmitForSettlement,
		},
	}
	if err := c.do(ctx, http.MethodPost, "transactions", body, &resp); err != nil {
		return nil, err
	}

	c.logger.Info("braintree sale created",
		zap.String("transaction_id", resp.Transaction.ID),
		zap.String("amount", req.Amount.StringFixed(2)))
	return &resp.Transaction, nil
}

// SubmitForSettlement captures an authorized transaction.
// PUT /merchants/{merchant_id}/v1/transactions/{id}/submit_for_settlement
func (c *Client) SubmitForSettlement(ctx context.Context, transactionID string) (*gateway.TransactionObject, error) {
	return c.transactionAction(ctx, transactionID, "submit_for_settlement")
}

// Refund refunds a settled transaction, fully or partially. The response is
// the new credit transaction.
// POST /merchants/{merchant_id}/v1/transactions/{id}/refund
func (c *Client) Refund(ctx context.Context, transactionID string, amount decimal.Decimal) (*gateway.TransactionObject, error) {
	var resp transactionEnvelope
	body := map[string]interface{}{
		"transaction": map[string]interface{}{
			"amount": amount.StringFixed(2),
		},
	}
	if err := c.do(ctx, http.MethodPost, "transactions/"+transactionID+"/refund", body, &resp); err != nil {
		return nil, err
	}

	c.logger.Info("braintree transaction refunded",
		zap.String("transaction_id", transactionID),
		zap.String("credit_id", resp.Transaction.ID),
		zap.String("amount", amount.StringFixed(2)))
	return &resp.Transaction, nil
}

// Void cancels a transaction that has not settled.
// PUT /merchants/{merchant_id}/v1/transactions/{id}/void
func (c *Client) Void(ctx context.Context, transactionID string) (*gateway.TransactionObject, error) {
	return c.transactionAction(ctx, transactionID, "void")
}

// HoldInEscrow places a marketplace transaction's funds in escrow.
// PUT /merchants/{merchant_id}/v1/transactions/{id}/hold_in_escrow
func (c *Client) HoldInEscrow(ctx context.Context, transactionID string) (*gateway.TransactionObject, error) {
	return c.transactionAction(ctx, transactionID, "hold_in_escrow")
}

// ReleaseFromEscrow schedules escrowed funds for release.
// PUT /merchants/{merchant_id}/v1/transactions/{id}/release_from_escrow
func (c *Client) ReleaseFromEscrow(ctx context.Context, transactionID string) (*gateway.TransactionObject, error) {
	return c.transactionAction(ctx, transactionID, "release_from_escrow")
}

// CancelRelease cancels a pending escrow release.
// PUT /merchants/{merchant_id}/v1/transactions/{id}/cancel_release
func (c *Client) CancelRelease(ctx context.Context, transactionID string) (*gateway.TransactionObject, error) {
	return c.transactionAction(ctx, transactionID, "cancel_release")
}

func (c *Client) transactionAction(ctx context.Context, transactionID, action string) (*gateway.TransactionObject, error) {
	var resp transactionEnvelope
	if err := c.do(ctx, http.MethodPut, "transactions/"+transactionID+"/"+action, nil, &resp); err != nil {
		return nil, err
	}

	c.logger.Info("braintree transaction action applied",
		zap.String("transaction_id", transactionID),
		zap.String("action", action),
		zap.String("status", resp.Transaction.Status))
	return &resp.Transaction, nil
}
