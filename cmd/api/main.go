package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vehicle-forecast-api/config"
	"vehicle-forecast-api/middleware"
	"vehicle-forecast-api/models"
	"vehicle-forecast-api/routes"
	"vehicle-forecast-api/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type stores interface {
	services.RecordStore
	services.DataSourceStore
}

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()

	sources := services.NewDataSourceService(store)
	if err := sources.Ensure(ctx, cfg.DataSource.Default); err != nil {
		log.Fatalf("Failed to register data source %q: %v", cfg.DataSource.Default, err)
	}

	// Redis is optional; without it the listing is uncached and live updates are off
	cache, err := services.NewCacheService(cfg.Redis)
	if err != nil {
		log.Printf("Redis unavailable, continuing without cache: %v", err)
	}
	defer cache.Close()

	records := services.NewHistoricalService(store, cache)
	forecasts := services.NewForecastService(store, sources)

	// Initialize Gin router
	router := gin.Default()
	router.Use(middleware.SetupCORS(cfg.CORS))
	routes.SetupRoutes(router, routes.Deps{
		Records:   records,
		Sources:   sources,
		Forecasts: forecasts,
		Cache:     cache,
		StaticDir: cfg.Server.StaticDir,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Starting server on %s (store=%s)", srv.Addr, cfg.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.MQTT.Enabled() {
		ingestor := services.NewIngestor(records)
		g.Go(func() error {
			return ingestor.Run(gctx, cfg.MQTT)
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatalf("Server stopped with error: %v", err)
	}
	log.Printf("Server stopped")
}

// openStore returns the configured record store, migrated and seeded.
func openStore(ctx context.Context, cfg *config.Config) (stores, func(), error) {
	var seed []models.HistoricalRecord
	if cfg.DataSource.SeedDefault {
		seed = models.DefaultHistoricalData()
	}

	if cfg.Store == config.StoreMemory {
		log.Printf("Using in-memory store with %d seeded records", len(seed))
		return services.NewMemoryStore(seed...), func() {}, nil
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.GetDSN()), &gorm.Config{})
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("get sql db handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}
	closeDB := func() {
		if err := sqlDB.Close(); err != nil {
			log.Printf("close database: %v", err)
		}
	}

	store := services.NewGormStore(db)
	if err := store.Migrate(ctx); err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	n, err := store.SeedRecords(ctx, seed)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	if n > 0 {
		log.Printf("Seeded %d historical records", n)
	}

	return store, closeDB, nil
}
