package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/bimakw/meme-swap/internal/config"
	"github.com/bimakw/meme-swap/internal/domain/services"
	"github.com/bimakw/meme-swap/internal/infrastructure/coingecko"
	"github.com/bimakw/meme-swap/internal/infrastructure/metrics"
	"github.com/bimakw/meme-swap/internal/logging"
	"github.com/bimakw/meme-swap/internal/presentation"
)

const (
	version = "0.1.0"
)

func main() {
	configPath := flag.String("config", "", "optional toml config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		// logger settings come from the config, fall back to defaults
		log := logging.New("info", "console")
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	log.Info().Stringer("config", cfg).Msg("Configuration loaded")

	// Initialize metrics
	var gatherer prometheus.Gatherer
	var registerer prometheus.Registerer
	if cfg.EnableMetrics {
		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		gatherer, registerer = registry, registry
	}
	collector := metrics.NewCollector(registerer)

	// Initialize market-data client
	marketData, err := coingecko.NewClient(coingecko.Config{
		BaseURL: cfg.CoingeckoBaseURL,
		APIKey:  cfg.CoingeckoAPIKey,
		Metrics: collector,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create market-data client")
	}

	// Initialize services
	tokenService := services.NewTokenService(marketData, log)
	selectionService := services.NewSelectionService(tokenService, collector, log)

	router := presentation.NewRouter(presentation.RouterConfig{
		Version:          version,
		AllowedOrigins:   cfg.AllowedOrigins,
		TokenService:     tokenService,
		SelectionService: selectionService,
		Logger:           log,
		Gatherer:         gatherer,
	})

	port := strconv.Itoa(cfg.Port)
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Str("version", version).Str("port", port).Msg("Starting meme-swap API")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown error")
	}
	log.Info().Msg("Server stopped")
}
