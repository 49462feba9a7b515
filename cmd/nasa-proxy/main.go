// Package main is the entry point for the NASA data proxy server.
//
// The proxy sits between a frontend and the public NASA APIs, caching
// upstream responses in memory, brokering AI caption/answer requests, and
// streaming live-update pings over WebSocket.
//
// Configuration is environment-driven; see internal/config for the full
// list of variables. A minimal start:
//
//	export NASA_API_KEY=your-key
//	export PORT=5000
//	./nasa-proxy
//
// Without NASA_API_KEY the proxy uses NASA's shared DEMO_KEY, which is
// heavily rate limited. Without OPENAI_API_KEY the AI endpoints serve
// deterministic local fallbacks instead of calling OpenAI.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/astroshed/nasa-data-proxy/internal/api"
	"github.com/astroshed/nasa-data-proxy/internal/config"
	"github.com/astroshed/nasa-data-proxy/internal/ws"
	"github.com/astroshed/nasa-data-proxy/pkg/ai"
	"github.com/astroshed/nasa-data-proxy/pkg/cache"
	"github.com/astroshed/nasa-data-proxy/pkg/logging"
	"github.com/astroshed/nasa-data-proxy/pkg/nasa"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logging is not configured yet; use the global logger as-is.
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.LogLevel),
		Pretty: cfg.LogPretty,
	})
	logger := logging.NewLogger("main")

	store := cache.NewStore(cfg.CacheSweepInterval)
	defer store.Close()

	nasaClient := nasa.New(nasa.Config{
		APIKey:  cfg.NASAAPIKey,
		Timeout: cfg.UpstreamTimeout,
	})

	aiClient := ai.New(ai.Config{
		APIKey:  cfg.OpenAIAPIKey,
		Timeout: cfg.UpstreamTimeout,
	})
	if aiClient.Enabled() {
		logger.Info().Msg("AI endpoints will call OpenAI")
	} else {
		logger.Info().Msg("OPENAI_API_KEY not set, AI endpoints serve local fallbacks")
	}

	router := api.NewRouter(api.Options{
		Store:       store,
		NASA:        nasaClient,
		AI:          aiClient,
		Notifier:    ws.NewNotifier(cfg.LiveUpdateInterval),
		CacheTTL:    cfg.CacheTTL,
		CORSOrigins: cfg.CORSOrigins,
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.Routes(),
		ReadTimeout:  cfg.UpstreamTimeout,
		WriteTimeout: 0, // WebSocket connections write indefinitely
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("addr", server.Addr).
			Dur("cache_ttl", cfg.CacheTTL).
			Msg("Starting NASA data proxy")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Server failed")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
	}
	logger.Info().Msg("Server stopped")
}
