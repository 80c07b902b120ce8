package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"vintage-atelier/internal/cart"
	"vintage-atelier/internal/catalog"
	"vintage-atelier/internal/config"
	custommiddleware "vintage-atelier/internal/middleware"
	"vintage-atelier/internal/repository"
	"vintage-atelier/internal/service"
	"vintage-atelier/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

// NewServer wires the storefront: the seeded catalog, the per-session cart
// store, the stub identity service and the session-state mirror behind the
// chi router. db and redisClient may be nil when the corresponding backends
// are not configured.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	states repository.StateRepository,
	db *sql.DB,
	redisClient *redis.Client,
) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env == "development"))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Initialize domain state
	cat := catalog.Default()
	carts := cart.NewStore()

	// Initialize services
	shopService := service.NewShopService(cat, carts, states, logger)
	identityService := service.NewIdentityService(states, carts, cfg.Session.Secret, logger)

	// Initialize handlers
	catalogHandler := transport.NewCatalogHandler(shopService, logger)
	cartHandler := transport.NewCartHandler(shopService, logger)
	orderHandler := transport.NewOrderHandler(shopService, logger)
	authHandler := transport.NewAuthHandler(identityService, logger)

	// Register API routes behind session resolution (and rate limiting when
	// redis is configured)
	router.Group(func(r chi.Router) {
		r.Use(custommiddleware.Session(identityService, logger))

		if redisClient != nil {
			r.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
				RequestsPerWindow: cfg.RateLimit.RequestsPerMinute,
				Window:            time.Minute,
				KeyPrefix:         "storefront_rate_limit",
			}, logger))
		}

		catalogHandler.RegisterRoutes(r)
		cartHandler.RegisterRoutes(r)
		orderHandler.RegisterRoutes(r)
		authHandler.RegisterRoutes(r, custommiddleware.RequireUser(logger))
	})

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
