package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/seedpay/braintree-sync/internal/config"
	"github.com/seedpay/braintree-sync/internal/infrastructure/database"
	"github.com/seedpay/braintree-sync/internal/infrastructure/gateway/braintree"
	"github.com/seedpay/braintree-sync/internal/logger"
	"github.com/seedpay/braintree-sync/internal/usecase"
)

// resync re-fetches the given transaction ids from the gateway and refreshes
// the local mirror. Usage: resync <braintree_id> [<braintree_id>...]
func main() {
	if len(os.Args) < 2 {
		log.Fatalf("Usage: %s <braintree_id> [<braintree_id>...]", os.Args[0])
	}
	ids := os.Args[1:]

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewZapLogger(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	// Initialize database connection
	db, err := database.NewConnection(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, zapLogger); err != nil {
			zapLogger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	// Run migrations
	if err := database.Migrate(db, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize repositories and services
	repos := database.NewRepositories(db, zapLogger)
	gatewayClient := braintree.New(&cfg.Service.Braintree, zapLogger)
	syncService := usecase.NewSyncService(repos.Customer, repos.Transaction, zapLogger)

	ctx := context.Background()

	synced := 0
	for _, id := range ids {
		obj, err := gatewayClient.FindTransaction(ctx, id)
		if err != nil {
			zapLogger.Error("Failed to fetch transaction from gateway",
				zap.String("braintree_id", id),
				zap.Error(err))
			continue
		}

		if _, err := syncService.SyncTransaction(ctx, obj); err != nil {
			zapLogger.Error("Failed to sync transaction",
				zap.String("braintree_id", id),
				zap.Error(err))
			continue
		}
		synced++
	}

	zapLogger.Info("Resync completed",
		zap.Int("requested", len(ids)),
		zap.Int("synced", synced))
}
