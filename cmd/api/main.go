package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"vintage-atelier/internal/config"
	"vintage-atelier/internal/database"
	"vintage-atelier/internal/logger"
	"vintage-atelier/internal/repository"
	"vintage-atelier/internal/server"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func gracefulShutdown(apiServer *server.Server, logger *zap.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	logger.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// The context is used to inform the server it has 30 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// Close server resources
	if err := apiServer.Close(); err != nil {
		logger.Error("Error closing server resources", zap.Error(err))
	}

	logger.Info("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

// buildStateRepository picks the session-state mirror backend. The file
// backend needs nothing but a directory; the postgres backend opens the
// database and runs migrations.
func buildStateRepository(cfg *config.Config, log *zap.Logger) (repository.StateRepository, *sql.DB, error) {
	switch cfg.Store.Backend {
	case "postgres":
		dbService, err := database.New(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		db := dbService.DB()

		health := dbService.Health(context.Background())
		log.Info("Database health check", zap.Any("health", health))

		if err := dbService.Migrate("migrations", log); err != nil {
			return nil, nil, err
		}
		return repository.NewPostgresStateRepository(db), db, nil
	default:
		states, err := repository.NewFileStateRepository(cfg.Store.Dir)
		if err != nil {
			return nil, nil, err
		}
		return states, nil, nil
	}
}

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting vintage furniture storefront API",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
		zap.String("store_backend", cfg.Store.Backend),
	)

	// Initialize the session-state mirror
	states, db, err := buildStateRepository(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize session-state store", zap.Error(err))
	}

	// Optional redis client for rate limiting
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	// Create server
	srv := server.NewServer(cfg, log, states, db, redisClient)

	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	// Run graceful shutdown in a separate goroutine
	go gracefulShutdown(srv, log, done)

	log.Info("Server listening", zap.String("addr", srv.Addr))

	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal("HTTP server error", zap.Error(err))
	}

	// Wait for the graceful shutdown to complete
	<-done
	log.Info("Graceful shutdown complete")
}
