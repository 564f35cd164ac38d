package usecase

import (
	"encoding/json"

	"github.com/seedpay/braintree-sync/internal/domain/gateway"
	"github.com/seedpay/braintree-sync/internal/domain/model"
)

// The mirroring between gateway objects and local rows is driven by explicit
// mapping tables so the field coverage stays auditable and testable without a
// database. Local accounting state (amount_refunded) is deliberately not in
// the transaction table: a re-sync must never clobber it.

type customerField struct {
	remote string
	assign func(obj *gateway.CustomerObject, row *model.Customer)
}

var customerFieldMap = []customerField{
	{"first_name", func(obj *gateway.CustomerObject, row *model.Customer) { row.FirstName = obj.FirstName }},
	{"last_name", func(obj *gateway.CustomerObject, row *model.Customer) { row.LastName = obj.LastName }},
	{"company", func(obj *gateway.CustomerObject, row *model.Customer) { row.Company = obj.Company }},
	{"email", func(obj *gateway.CustomerObject, row *model.Customer) { row.Email = obj.Email }},
	{"phone", func(obj *gateway.CustomerObject, row *model.Customer) { row.Phone = obj.Phone }},
	{"fax", func(obj *gateway.CustomerObject, row *model.Customer) { row.Fax = obj.Fax }},
	{"website", func(obj *gateway.CustomerObject, row *model.Customer) { row.Website = obj.Website }},
	{"created_at", func(obj *gateway.CustomerObject, row *model.Customer) { row.BraintreeCreatedAt = obj.CreatedAt }},
	{"updated_at", func(obj *gateway.CustomerObject, row *model.Customer) { row.BraintreeUpdatedAt = obj.UpdatedAt }},
}

func applyCustomerFields(obj *gateway.CustomerObject, row *model.Customer) {
	for _, f := range customerFieldMap {
		f.assign(obj, row)
	}
}

type transactionField struct {
	remote string
	assign func(obj *gateway.TransactionObject, row *model.Transaction)
}

var transactionFieldMap = []transactionField{
	{"amount", func(obj *gateway.TransactionObject, row *model.Transaction) { row.Amount = obj.Amount }},
	{"status", func(obj *gateway.TransactionObject, row *model.Transaction) {
		row.Status = model.TransactionStatus(obj.Status)
	}},
	{"type", func(obj *gateway.TransactionObject, row *model.Transaction) {
		if obj.Type != "" {
			row.TransactionType = model.TransactionType(obj.Type)
		}
	}},
	{"escrow_status", func(obj *gateway.TransactionObject, row *model.Transaction) {
		if obj.EscrowStatus == "" {
			row.EscrowStatus = nil
			return
		}
		status := model.EscrowStatus(obj.EscrowStatus)
		row.EscrowStatus = &status
	}},
	{"currency_iso_code", func(obj *gateway.TransactionObject, row *model.Transaction) {
		row.CurrencyISOCode = obj.CurrencyISOCode
	}},
	{"merchant_account_id", func(obj *gateway.TransactionObject, row *model.Transaction) {
		if obj.MerchantAccountID == "" {
			row.MerchantAccountID = nil
			return
		}
		id := obj.MerchantAccountID
		row.MerchantAccountID = &id
	}},
	{"refunded_transaction_id", func(obj *gateway.TransactionObject, row *model.Transaction) {
		if obj.RefundedTransactionID == "" {
			row.RefundedTransactionID = nil
			return
		}
		id := obj.RefundedTransactionID
		row.RefundedTransactionID = &id
	}},
	{"created_at", func(obj *gateway.TransactionObject, row *model.Transaction) { row.BraintreeCreatedAt = obj.CreatedAt }},
	{"updated_at", func(obj *gateway.TransactionObject, row *model.Transaction) { row.BraintreeUpdatedAt = obj.UpdatedAt }},
}

func applyTransactionFields(obj *gateway.TransactionObject, row *model.Transaction) {
	for _, f := range transactionFieldMap {
		f.assign(obj, row)
	}
	row.BraintreeData = rawObject(obj)
}

// rawObject keeps the full gateway payload alongside the mirrored columns.
func rawObject(obj *gateway.TransactionObject) model.JSONB {
	data, err := json.Marshal(obj)
	if err != nil {
		return nil
	}
	var raw model.JSONB
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	return raw
}
