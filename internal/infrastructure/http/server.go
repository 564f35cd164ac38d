package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "github.com/seedpay/braintree-sync/internal/adapter/handler/http"
	"github.com/seedpay/braintree-sync/internal/config"
	"github.com/seedpay/braintree-sync/internal/domain/gateway"
	"github.com/seedpay/braintree-sync/internal/infrastructure/database"
	"github.com/seedpay/braintree-sync/internal/middleware/auth"
	"github.com/seedpay/braintree-sync/internal/usecase"
)

type Server struct {
	config   *config.Config
	logger   *zap.Logger
	echo     *echo.Echo
	repos    *database.Repositories
	gateway  gateway.Gateway
	verifier handlers.SignatureVerifier
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	repos *database.Repositories,
	gw gateway.Gateway,
	verifier handlers.SignatureVerifier,
) *Server {
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Service.ClientURL},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE},
	}))

	return &Server{
		config:   cfg,
		logger:   logger,
		echo:     e,
		repos:    repos,
		gateway:  gw,
		verifier: verifier,
	}
}

func (s *Server) Start() error {
	// Setup routes
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": "braintree-sync",
		})
	})

	// Initialize services
	syncService := usecase.NewSyncService(s.repos.Customer, s.repos.Transaction, s.logger)
	customerService := usecase.NewCustomerService(s.repos.Customer, s.gateway, syncService, s.logger)
	transactionService := usecase.NewTransactionService(s.repos.Transaction, s.gateway, syncService, s.logger)
	webhookService := usecase.NewWebhookService(s.repos.Webhook, s.gateway, syncService, s.logger)

	// Initialize handlers
	customerHandler := handlers.NewCustomerHandler(customerService, s.logger)
	transactionHandler := handlers.NewTransactionHandler(transactionService, customerService, s.logger)
	webhookHandler := handlers.NewWebhookHandler(webhookService, s.verifier, s.logger)

	// JWT middleware configuration
	jwtConfig := auth.JWTConfig{
		Secret: s.config.Service.JWTSecret,
		Logger: s.logger,
		SkipPaths: []string{
			"/health",
			"/webhooks",
		},
	}

	// API v1 routes (all require JWT authentication)
	v1 := s.echo.Group("/api/v1", auth.JWTMiddleware(jwtConfig))

	// Customers
	customers := v1.Group("/customers")
	customers.POST("", customerHandler.GetOrCreateCustomer)
	customers.GET("/:braintree_id", customerHandler.GetCustomer)
	customers.PUT("/:braintree_id", customerHandler.UpdateCustomer)

	// Transactions
	transactions := v1.Group("/transactions")
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.POST("", transactionHandler.CreateSale)
	transactions.GET("/:braintree_id", transactionHandler.GetTransaction)
	transactions.POST("/:braintree_id/capture", transactionHandler.Capture)
	transactions.POST("/:braintree_id/refund", transactionHandler.Refund)
	transactions.POST("/:braintree_id/void", transactionHandler.Void)
	transactions.POST("/:braintree_id/escrow/hold", transactionHandler.HoldInEscrow)
	transactions.POST("/:braintree_id/escrow/release", transactionHandler.ReleaseFromEscrow)
	transactions.POST("/:braintree_id/escrow/cancel-release", transactionHandler.CancelRelease)

	// Webhook route (outside API versioning, signature-verified)
	s.echo.POST("/webhooks/braintree", webhookHandler.HandleWebhook)
}
