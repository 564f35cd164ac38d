package http

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/seedpay/braintree-sync/internal/usecase"
)

// SignatureVerifier checks a webhook notification signature.
type SignatureVerifier interface {
	VerifyWebhookSignature(signature string, payload []byte) bool
}

type WebhookHandler struct {
	webhooks *usecase.WebhookService
	verifier SignatureVerifier
	logger   *zap.Logger
}

func NewWebhookHandler(webhooks *usecase.WebhookService, verifier SignatureVerifier, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		webhooks: webhooks,
		verifier: verifier,
		logger:   logger,
	}
}

type webhookRequest struct {
	Signature string `form:"bt_signature" json:"bt_signature"`
	Payload   string `form:"bt_payload" json:"bt_payload"`
}

type webhookNotification struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
}

// HandleWebhook verifies and ingests a gateway notification. Redelivered
// events are acknowledged without reprocessing.
func (h *WebhookHandler) HandleWebhook(c echo.Context) error {
	var req webhookRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if req.Signature == "" || req.Payload == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing signature or payload"})
	}

	payload, err := base64.StdEncoding.DecodeString(req.Payload)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Payload is not valid base64"})
	}

	if !h.verifier.VerifyWebhookSignature(req.Signature, payload) {
		h.logger.Warn("webhook signature verification failed")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Signature verification failed"})
	}

	var notification webhookNotification
	if err := json.Unmarshal(payload, &notification); err != nil {
		h.logger.Error("failed to parse webhook notification", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid notification payload"})
	}
	if notification.ID == "" || notification.Kind == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Notification is missing id or kind"})
	}

	h.logger.Info("webhook received",
		zap.String("event_id", notification.ID),
		zap.String("kind", notification.Kind))

	if err := h.webhooks.HandleNotification(c.Request().Context(), notification.ID, notification.Kind, payload); err != nil {
		h.logger.Error("webhook processing failed",
			zap.String("event_id", notification.ID),
			zap.Error(err))
		// Stored with retry bookkeeping; tell the gateway to redeliver later.
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Webhook processing failed"})
	}

	return c.NoContent(http.StatusOK)
}
