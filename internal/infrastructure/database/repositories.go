package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seedpay/braintree-sync/internal/adapter/repository"
	domainRepo "github.com/seedpay/braintree-sync/internal/domain/repository"
)

// Repositories holds all repository instances
type Repositories struct {
	Customer    domainRepo.CustomerRepository
	Transaction domainRepo.TransactionRepository
	Webhook     repository.WebhookRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		Customer:    repository.NewCustomerRepository(db, logger),
		Transaction: repository.NewTransactionRepository(db, logger),
		Webhook:     repository.NewWebhookRepository(db, logger),
	}
}
