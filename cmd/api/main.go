package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"delivery-quote-backend/config"
	"delivery-quote-backend/internal/delivery/http/middleware"
	v1 "delivery-quote-backend/internal/delivery/http/v1"
	"delivery-quote-backend/internal/domain"
	"delivery-quote-backend/internal/infrastructure/cache"
	"delivery-quote-backend/internal/infrastructure/mapbox"
	memoryrepo "delivery-quote-backend/internal/repository/memory"
	objectrepo "delivery-quote-backend/internal/repository/objectstore"
	pgrepo "delivery-quote-backend/internal/repository/postgres"
	"delivery-quote-backend/internal/usecase"
	"delivery-quote-backend/pkg/logger"
	"delivery-quote-backend/pkg/storage"
	"delivery-quote-backend/pkg/utils"

	"github.com/NYTimes/gziphandler"
	"golang.org/x/time/rate"
)

const serviceName = "delivery-quote-api"

func main() {
	cfg := config.LoadConfig()

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	// Document store, selected by STORE_DRIVER
	store, closeStore, err := newWarehouseStore(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("Failed to initialize document store")
	}
	defer closeStore()

	// Local settings cache. Entries never expire; the slot is snapshotted to disk.
	memCache := cache.NewMemoryCache(-1, 0)
	settingsSlot := cache.NewSettingsSlot(memCache, cfg.CacheSnapshotPath)
	if err := settingsSlot.Restore(); err != nil {
		log.Warn().Err(err).Msg("Ignoring unreadable settings snapshot")
	}

	mapboxClient := mapbox.NewClient(
		cfg.MapboxBaseURL,
		cfg.MapboxToken,
		cfg.MapboxCountries,
		cfg.MapboxLanguage,
		&http.Client{Timeout: cfg.RoutingTimeout},
	)

	// --- Modules Initialization ---
	registryUC := usecase.NewRegistryUsecase(store, settingsSlot)
	quoteUC := usecase.NewQuoteUsecase(mapboxClient, mapboxClient, registryUC)
	settingsUC := usecase.NewSettingsUsecase(
		cfg.SettingsPIN,
		utils.NewTokenIssuer(cfg.SessionSecret, cfg.SessionExpiry),
		registryUC,
	)

	warehouseHandler := v1.NewWarehouseHandler(registryUC)
	quoteHandler := v1.NewQuoteHandler(quoteUC)
	addressHandler := v1.NewAddressHandler(quoteUC)
	settingsHandler := v1.NewSettingsHandler(settingsUC, cfg.Env == "production", int(cfg.SessionExpiry.Seconds()))

	// Warm the cache from the store without blocking startup.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.StoreTimeout)
		defer cancel()
		if _, err := registryUC.RefreshFromRemote(ctx); err == nil {
			log.Info().Msg("Warehouse settings loaded from store")
		}
	}()

	// Set up Router
	mux := http.NewServeMux()

	// Calculator
	mux.HandleFunc("GET /api/v1/warehouses", warehouseHandler.ListWarehouses)
	mux.HandleFunc("GET /api/v1/address/search", addressHandler.Search)
	mux.HandleFunc("POST /api/v1/quotes", quoteHandler.CreateQuote)

	// Settings (PIN gated)
	settingsOnly := func(h http.HandlerFunc) http.Handler {
		return middleware.SettingsMiddleware(settingsUC)(h)
	}
	mux.HandleFunc("POST /api/v1/settings/unlock", settingsHandler.Unlock)
	mux.Handle("GET /api/v1/settings/warehouses", settingsOnly(settingsHandler.GetWarehouses))
	mux.Handle("PUT /api/v1/settings/warehouses", settingsOnly(settingsHandler.SaveWarehouses))

	// Health Check
	healthHandler := func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok", "store": cfg.StoreDriver})
	}
	mux.HandleFunc("GET /api/v1/health", healthHandler)
	mux.HandleFunc("GET /health", healthHandler) // Support root health check for Load Balancers

	addr := fmt.Sprintf(":%s", cfg.Port)

	// Per-IP rate limiter, cleanup every minute, TTL 3 minutes
	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		rate.Limit(cfg.RateLimitRPS),
		cfg.RateLimitBurst,
		time.Minute,
		3*time.Minute,
	)

	// Apply CORS, Request Logger, Rate Limit, and Gzip
	handler := middleware.NewCORSMiddleware(cfg)(mux)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	logger.ServiceStart(serviceName, cfg.StoreDriver, cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	rateLimiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.ServiceStop(serviceName)
}

// newWarehouseStore builds the document store for cfg.StoreDriver. The returned
// func releases its resources.
func newWarehouseStore(ctx context.Context, cfg *config.Config) (domain.WarehouseStore, func(), error) {
	log := logger.Get()

	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		if cfg.MigrateOnStart {
			if err := pgrepo.Migrate(cfg.DBUrl); err != nil {
				return nil, nil, fmt.Errorf("migrate: %w", err)
			}
		}
		pool, err := pgrepo.NewPgxPool(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Msg("Successfully connected to PostgreSQL via pgx")
		return pgrepo.NewWarehouseRepository(pool), pool.Close, nil

	case config.StoreDriverS3:
		r2Storage, err := storage.NewR2Storage(
			ctx,
			cfg.R2AccountID,
			cfg.R2AccessKeyID,
			cfg.R2AccessKeySecret,
			cfg.R2BucketName,
			cfg.StoreTimeout,
		)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("bucket", cfg.R2BucketName).Msg("Using R2 document store")
		return objectrepo.NewWarehouseRepository(r2Storage, cfg.R2Prefix), func() {}, nil

	case config.StoreDriverMemory:
		log.Info().Msg("Using in-memory document store")
		return memoryrepo.NewWarehouseRepository(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
