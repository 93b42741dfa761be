package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"partyboard/application"
	"partyboard/config"
	"partyboard/database"
	"partyboard/domain/entities"
	"partyboard/domain/services"
	"partyboard/infrastructure"
	"partyboard/repository"
)

// Run initializes and starts the ranking engine
func Run(ctx context.Context) error {
	log.Println("Starting partyboard ranking engine...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	// Repositories
	userRepo := repository.NewUserRepository(db)
	partyRepo := repository.NewPartyRepository(db)
	cachedStatsRepo := repository.NewCachedStatsRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// External collaborators
	provider := infrastructure.NewTrackerProvider(cfg.TrackerAPIURL, cfg.TrackerAPIKey)
	pushSender := infrastructure.NewHTTPPushSender(cfg.PushAPIURL, cfg.PushAPIKey, cfg.PushMaxBatchSize)

	// Engine services
	ttls := map[entities.Game]time.Duration{
		entities.GameLeagueOfLegends: cfg.LoLStatsTTL,
		entities.GameValorant:        cfg.ValorantStatsTTL,
	}
	statsCache := services.NewStatsCacheService(userRepo, cachedStatsRepo, provider, ttls)
	dispatcher := services.NewNotificationDispatcher(userRepo, notificationRepo, pushSender)
	orchestrator := application.NewPartyUpdateOrchestrator(partyRepo, snapshotRepo, statsCache, dispatcher)

	// Trigger signal transport
	log.Printf("Connecting to NATS at %s...", cfg.NATSServers)
	natsClient := infrastructure.NewNATSClient(cfg.NATSServers)
	if err := natsClient.Connect(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}
	if err := natsClient.EnsureStatsEventStream(); err != nil {
		natsClient.Close()
		db.Close()
		return fmt.Errorf("failed to ensure stats event stream: %w", err)
	}

	listener := infrastructure.NewStatsEventListener(orchestrator)
	if err := natsClient.Subscribe("stats.updated.*", func(data []byte) error {
		return listener.HandleStatsUpdated(ctx, data)
	}); err != nil {
		natsClient.Close()
		db.Close()
		return fmt.Errorf("failed to subscribe to stats updates: %w", err)
	}

	// Wait for context cancellation
	log.Printf("Engine is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Println("Shutting down engine...")

	if err := natsClient.Close(); err != nil {
		log.Printf("Error closing NATS client: %v", err)
	}

	// Give in-flight invocations time to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Println("Closing database connection...")
	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Println("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Println("Shutdown completed")
	}

	return nil
}
