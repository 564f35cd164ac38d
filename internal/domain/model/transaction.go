package model

import (
	"database/sql/driver"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus mirrors the gateway's transaction states.
type TransactionStatus string

const (
	TransactionStatusAuthorizing            TransactionStatus = "authorizing"
	TransactionStatusAuthorized             TransactionStatus = "authorized"
	TransactionStatusSubmittedForSettlement TransactionStatus = "submitted_for_settlement"
	TransactionStatusSettling               TransactionStatus = "settling"
	TransactionStatusSettled                TransactionStatus = "settled"
	TransactionStatusVoided                 TransactionStatus = "voided"
	TransactionStatusProcessorDeclined      TransactionStatus = "processor_declined"
	TransactionStatusGatewayRejected        TransactionStatus = "gateway_rejected"
	TransactionStatusFailed                 TransactionStatus = "failed"
)

// Scan implements sql.Scanner interface
func (s *TransactionStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = TransactionStatus(v)
	case []byte:
		*s = TransactionStatus(v)
	default:
		*s = ""
	}
	return nil
}

// Value implements driver.Valuer interface
func (s TransactionStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// TransactionType distinguishes a charge from the credit row a refund creates.
type TransactionType string

const (
	TransactionTypeSale   TransactionType = "sale"
	TransactionTypeCredit TransactionType = "credit"
)

// Scan implements sql.Scanner interface
func (t *TransactionType) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*t = TransactionType(v)
	case []byte:
		*t = TransactionType(v)
	default:
		*t = TransactionTypeSale
	}
	return nil
}

// Value implements driver.Valuer interface
func (t TransactionType) Value() (driver.Value, error) {
	return string(t), nil
}

// EscrowStatus mirrors the gateway's escrow states for marketplace funds.
type EscrowStatus string

const (
	EscrowStatusHoldPending    EscrowStatus = "hold_pending"
	EscrowStatusHeld           EscrowStatus = "held"
	EscrowStatusReleasePending EscrowStatus = "release_pending"
	EscrowStatusReleased       EscrowStatus = "released"
)

// Scan implements sql.Scanner interface
func (e *EscrowStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*e = EscrowStatus(v)
	case []byte:
		*e = EscrowStatus(v)
	default:
		*e = ""
	}
	return nil
}

// Value implements driver.Valuer interface
func (e EscrowStatus) Value() (driver.Value, error) {
	return string(e), nil
}

// Transaction mirrors a Braintree transaction. AmountRefunded is local
// accounting state maintained by the refund path; it is never overwritten by
// a sync because the gateway object does not carry it.
type Transaction struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	BraintreeID string `gorm:"column:braintree_id;unique;not null;size:100;index" json:"braintree_id"`

	// CustomerID is nullable: a transaction can be observed before its
	// customer is known locally.
	CustomerID *int64    `gorm:"index" json:"customer_id,omitempty"`
	Customer   *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	Amount          decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"amount"`
	AmountRefunded  *decimal.Decimal  `gorm:"type:decimal(10,2)" json:"amount_refunded,omitempty"`
	Status          TransactionStatus `gorm:"type:transaction_status;size:50;index" json:"status"`
	TransactionType TransactionType   `gorm:"type:transaction_kind;size:20;default:'sale'" json:"transaction_type"`
	EscrowStatus    *EscrowStatus     `gorm:"type:escrow_status;size:30" json:"escrow_status,omitempty"`

	CurrencyISOCode   string  `gorm:"size:3" json:"currency_iso_code"`
	MerchantAccountID *string `gorm:"size:100" json:"merchant_account_id,omitempty"`

	// RefundedTransactionID links a credit row back to the sale it refunds.
	RefundedTransactionID *string `gorm:"size:100;index" json:"refunded_transaction_id,omitempty"`

	BraintreeData JSONB `gorm:"type:jsonb" json:"braintree_data,omitempty"`

	BraintreeCreatedAt *time.Time `json:"braintree_created_at,omitempty"`
	BraintreeUpdatedAt *time.Time `json:"braintree_updated_at,omitempty"`

	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Transaction) TableName() string {
	return "transactions"
}

// MaxRefund returns the amount eligible for refund. With no requested amount
// the full remaining balance is eligible; a requested amount above the
// remaining balance is clamped, not rejected.
func (t *Transaction) MaxRefund(requested *decimal.Decimal) decimal.Decimal {
	remaining := t.Amount
	if t.AmountRefunded != nil {
		remaining = t.Amount.Sub(*t.AmountRefunded)
	}
	if requested == nil || requested.GreaterThan(remaining) {
		return remaining
	}
	return *requested
}
