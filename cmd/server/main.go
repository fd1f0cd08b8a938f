// backend-go/cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sopcenter/backend-go/internal/api"
	"github.com/sopcenter/backend-go/internal/cache"
	"github.com/sopcenter/backend-go/internal/config"
	"github.com/sopcenter/backend-go/internal/recommend"
	"github.com/sopcenter/backend-go/internal/repository"
	csvrepo "github.com/sopcenter/backend-go/internal/repository/csv"
	"github.com/sopcenter/backend-go/internal/repository/postgres"
	"github.com/sopcenter/backend-go/internal/service"
	"github.com/sopcenter/backend-go/internal/simulation"
	"github.com/sopcenter/backend-go/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Pick the dataset source
	var repo repository.DatasetRepository
	switch cfg.Data.Source {
	case "postgres":
		db, err := postgres.NewDB(&cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		repo = postgres.NewDatasetRepository(db.DB)
	case "csv":
		repo = csvrepo.NewRepository(filepath.Join(cfg.Data.DatasetDir, cfg.Data.Dataset))
	default:
		log.Fatalf("Unknown DATA_SOURCE %q (expected csv or postgres)", cfg.Data.Source)
	}

	// Optional simulation result cache (noop unless CACHE_ENABLED)
	simCache, err := cache.NewSimulationCache(cfg.Cache)
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}

	// Optional LLM-backed recommendation generator
	var generator recommend.Generator
	if cfg.Recommend.Enabled && cfg.Recommend.GeminiAPIKey != "" {
		ctx := context.Background()
		products, err := repo.Products(ctx)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("could not load product catalog for recommendations")
		}
		gemini, err := recommend.NewGemini(ctx, cfg.Recommend.GeminiAPIKey, cfg.Recommend.GeminiModel, recommend.NewRuleBased(products))
		if err != nil {
			log.Fatalf("Failed to initialize Gemini recommender: %v", err)
		}
		defer gemini.Close()
		generator = gemini
	}

	simulator := simulation.New(simulation.Thresholds{
		Stockout: cfg.Simulation.StockoutThreshold,
		AtRisk:   cfg.Simulation.AtRiskThreshold,
	})
	simService := service.NewSimulationService(repo, simulator, simCache, generator)

	// Initialize HTTP server
	router := api.NewRouter(simService, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Str("data_source", cfg.Data.Source).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
