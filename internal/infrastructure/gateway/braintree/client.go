package braintree

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/seedpay/braintree-sync/internal/config"
	"github.com/seedpay/braintree-sync/internal/domain/gateway"
)

const (
	sandboxBaseURL    = "https://api.sandbox.braintreegateway.com"
	productionBaseURL = "https://api.braintreegateway.com"
	apiVersion        = "v1"
)

// Client implements the Gateway interface against the Braintree HTTP API.
// It is constructed explicitly from credentials at process start; there is
// no package-level configuration.
type Client struct {
	baseURL    string
	merchantID string
	publicKey  string
	privateKey string
	client     *http.Client
	logger     *zap.Logger
}

// New creates a gateway client for the configured environment.
func New(cfg *config.BraintreeConfig, logger *zap.Logger) *Client {
	baseURL := sandboxBaseURL
	if cfg.Environment == "production" {
		baseURL = productionBaseURL
	}

	return &Client{
		baseURL:    baseURL,
		merchantID: cfg.MerchantID,
		publicKey:  cfg.PublicKey,
		privateKey: cfg.PrivateKey,
		client:     &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
	}
}

var _ gateway.Gateway = (*Client)(nil)

// do sends one API request and decodes the response into out. Vendor and
// transport failures both surface as *gateway.GatewayError.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return &gateway.GatewayError{
				Code:    "MARSHAL_ERROR",
				Message: "Failed to prepare request",
				Details: err.Error(),
			}
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	url := fmt.Sprintf("%s/merchants/%s/%s/%s", c.baseURL, c.merchantID, apiVersion, path)
	httpReq, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return &gateway.GatewayError{
			Code:    "REQUEST_ERROR",
			Message: "Failed to create request",
			Details: err.Error(),
		}
	}

	auth := base64.StdEncoding.EncodeToString([]byte(c.publicKey + ":" + c.privateKey))
	httpReq.Header.Set("Authorization", "Basic "+auth)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.Error("braintree request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return &gateway.GatewayError{
			Code:    "API_ERROR",
			Message: "Braintree API request failed",
			Details: err.Error(),
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &gateway.GatewayError{
			Code:    "RESPONSE_ERROR",
			Message: "Failed to read response",
			Details: err.Error(),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp struct {
			APIErrorResponse struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"api_error_response"`
		}
		json.Unmarshal(respBody, &errResp)

		c.logger.Error("braintree request rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode),
			zap.String("response", string(respBody)))

		code := errResp.APIErrorResponse.Code
		if code == "" {
			code = fmt.Sprintf("HTTP_%d", resp.StatusCode)
		}
		message := errResp.APIErrorResponse.Message
		if message == "" {
			message = "Braintree request rejected"
		}

		return &gateway.GatewayError{
			Code:    code,
			Message: message,
			Details: string(respBody),
		}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return &gateway.GatewayError{
				Code:    "PARSE_ERROR",
				Message: "Failed to parse response",
				Details: err.Error(),
			}
		}
	}

	return nil
}

// VerifyWebhookSignature checks a notification signature against the private
// key. The signature header carries "publicKey|hexdigest".
func (c *Client) VerifyWebhookSignature(signature string, payload []byte) bool {
	mac := hmac.New(sha256.New, []byte(c.privateKey))
	mac.Write(payload)
	expected := c.publicKey + "|" + hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expected))
}
