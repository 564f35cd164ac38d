package braintree

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/seedpay/braintree-sync/internal/domain/gateway"
)

// customerEnvelope wraps customer responses.
type customerEnvelope struct {
	Customer gateway.CustomerObject `json:"customer"`
}

// CreateCustomer registers a customer with the gateway.
// POST /merchants/{merchant_id}/v1/customers
func (c *Client) CreateCustomer(ctx context.Context, req *gateway.CreateCustomerRequest) (*gateway.CustomerObject, error) {
	var resp customerEnvelope
	body := map[string]interface{}{"customer": req}
	if err := c.do(ctx, http.MethodPost, "customers", body, &resp); err != nil {
		return nil, err
	}

	c.logger.Info("braintree customer created",
		zap.String("customer_id", resp.Customer.ID))
	return &resp.Customer, nil
}

// FindCustomer fetches a customer by gateway id.
// GET /merchants/{merchant_id}/v1/customers/{id}
func (c *Client) FindCustomer(ctx context.Context, customerID string) (*gateway.CustomerObject, error) {
	var resp customerEnvelope
	if err := c.do(ctx, http.MethodGet, "customers/"+customerID, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Customer, nil
}

// UpdateCustomer updates profile fields on the gateway side.
// PUT /merchants/{merchant_id}/v1/customers/{id}
func (c *Client) UpdateCustomer(ctx context.Context, customerID string, req *gateway.UpdateCustomerRequest) (*gateway.CustomerObject, error) {
	var resp customerEnvelope
	body := map[string]interface{}{"customer": req}
	if err := c.do(ctx, http.MethodPut, "customers/"+customerID, body, &resp); err != nil {
		return nil, err
	}

	c.logger.Info("braintree customer updated",
		zap.String("customer_id", customerID))
	return &resp.Customer, nil
}
