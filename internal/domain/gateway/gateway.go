package gateway

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Gateway defines the Braintree operations the service forwards to. All
// methods return the authoritative gateway object(s) so callers can sync the
// result back into local rows.
type Gateway interface {
	// CreateCustomer registers a customer with the gateway.
	CreateCustomer(ctx context.Context, req *CreateCustomerRequest) (*CustomerObject, error)

	// FindCustomer fetches a customer by its gateway id.
	FindCustomer(ctx context.Context, customerID string) (*CustomerObject, error)

	// UpdateCustomer updates profile fields on the gateway side.
	UpdateCustomer(ctx context.Context, customerID string, req *UpdateCustomerRequest) (*CustomerObject, error)

	// FindTransaction fetches a transaction by its gateway id.
	FindTransaction(ctx context.Context, transactionID string) (*TransactionObject, error)

	// Sale creates a new sale transaction.
	Sale(ctx context.Context, req *SaleRequest) (*TransactionObject, error)

	// SubmitForSettlement captures an authorized transaction.
	SubmitForSettlement(ctx context.Context, transactionID string) (*TransactionObject, error)

	// Refund refunds a settled transaction, fully or partially. The returned
	// object is the new credit transaction, not the refunded original.
	Refund(ctx context.Context, transactionID string, amount decimal.Decimal) (*TransactionObject, error)

	// Void cancels a transaction that has not settled.
	Void(ctx context.Context, transactionID string) (*TransactionObject, error)

	// HoldInEscrow places a marketplace transaction's funds in escrow.
	HoldInEscrow(ctx context.Context, transactionID string) (*TransactionObject, error)

	// ReleaseFromEscrow schedules escrowed funds for release.
	ReleaseFromEscrow(ctx context.Context, transactionID string) (*TransactionObject, error)

	// CancelRelease cancels a pending escrow release.
	CancelRelease(ctx context.Context, transactionID string) (*TransactionObject, error)
}

// CreateCustomerRequest carries the profile fields sent on customer creation.
type CreateCustomerRequest struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Company   string `json:"company,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Fax       string `json:"fax,omitempty"`
	Website   string `json:"website,omitempty"`
}

// UpdateCustomerRequest carries the profile fields sent on customer update.
type UpdateCustomerRequest struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Company   string `json:"company,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Fax       string `json:"fax,omitempty"`
	Website   string `json:"website,omitempty"`
}

// SaleRequest creates a new charge against a customer or payment method.
type SaleRequest struct {
	Amount              decimal.Decimal `json:"amount"`
	CustomerID          string          `json:"customer_id,omitempty"`
	PaymentMethodNonce  string          `json:"payment_method_nonce,omitempty"`
	MerchantAccountID   string          `json:"merchant_account_id,omitempty"`
	HoldInEscrow        bool            `json:"hold_in_escrow,omitempty"`
	SubmitForSettlement bool            `json:"submit_for_settlement,omitempty"`
}

// CustomerObject is the gateway's representation of a customer.
type CustomerObject struct {
	ID        string     `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Company   string     `json:"company"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Fax       string     `json:"fax"`
	Website   string     `json:"website"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// TransactionObject is the gateway's representation of a transaction. The
// embedded customer is present when the gateway knows one; syncing resolves
// it into a local row before the transaction itself is stored.
type TransactionObject struct {
	ID                    string          `json:"id"`
	Amount                decimal.Decimal `json:"amount"`
	Status                string          `json:"status"`
	Type                  string          `json:"type"`
	EscrowStatus          string          `json:"escrow_status,omitempty"`
	CurrencyISOCode       string          `json:"currency_iso_code"`
	MerchantAccountID     string          `json:"merchant_account_id,omitempty"`
	RefundedTransactionID string          `json:"refunded_transaction_id,omitempty"`
	Customer              *CustomerObject `json:"customer,omitempty"`
	CreatedAt             *time.Time      `json:"created_at,omitempty"`
	UpdatedAt             *time.Time      `json:"updated_at,omitempty"`
}

// GatewayError carries a vendor-reported failure (decline, validation error,
// transport failure). It is returned to callers unchanged; no local state is
// written when one occurs.
type GatewayError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *GatewayError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}
