package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/seedpay/braintree-sync/internal/adapter/repository"
	"github.com/seedpay/braintree-sync/internal/domain/gateway"
)

// WebhookService stores gateway notifications and refreshes the local mirror
// for transaction-scoped kinds by re-fetching the authoritative object.
type WebhookService struct {
	webhooks repository.WebhookRepository
	gateway  gateway.Gateway
	sync     *SyncService
	logger   *zap.Logger
}

// NewWebhookService creates a new webhook service
func NewWebhookService(
	webhooks repository.WebhookRepository,
	gw gateway.Gateway,
	sync *SyncService,
	logger *zap.Logger,
) *WebhookService {
	return &WebhookService{
		webhooks: webhooks,
		gateway:  gw,
		sync:     sync,
		logger:   logger,
	}
}

// webhookPayload is the subset of the notification body the service acts on.
type webhookPayload struct {
	Transaction *struct {
		ID string `json:"id"`
	} `json:"transaction"`
}

// HandleNotification records the event and processes it. Redelivered events
// are stored once and processed once.
func (s *WebhookService) HandleNotification(ctx context.Context, eventID, kind string, payload json.RawMessage) error {
	existing, err := s.webhooks.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if existing != nil && existing.ProcessedAt != nil {
		s.logger.Debug("webhook event already processed",
			zap.String("event_id", eventID))
		return nil
	}

	if err := s.webhooks.SaveEvent(ctx, eventID, kind, payload); err != nil {
		return err
	}

	if err := s.process(ctx, kind, payload); err != nil {
		if markErr := s.webhooks.MarkFailed(ctx, eventID, err); markErr != nil {
			s.logger.Error("failed to record webhook failure",
				zap.String("event_id", eventID),
				zap.Error(markErr))
		}
		return err
	}

	return s.webhooks.MarkProcessed(ctx, eventID)
}

func (s *WebhookService) process(ctx context.Context, kind string, payload json.RawMessage) error {
	// Only transaction-scoped kinds touch the mirror; everything else is
	// stored for audit and ignored.
	if !strings.HasPrefix(kind, "transaction_") {
		s.logger.Debug("webhook kind ignored", zap.String("kind", kind))
		return nil
	}

	var body webhookPayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return fmt.Errorf("failed to parse webhook payload: %w", err)
	}
	if body.Transaction == nil || body.Transaction.ID == "" {
		return fmt.Errorf("webhook payload has no transaction id")
	}

	obj, err := s.gateway.FindTransaction(ctx, body.Transaction.ID)
	if err != nil {
		return err
	}

	if _, err := s.sync.SyncTransaction(ctx, obj); err != nil {
		return err
	}

	s.logger.Info("webhook applied",
		zap.String("kind", kind),
		zap.String("braintree_id", body.Transaction.ID))
	return nil
}
