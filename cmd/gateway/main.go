package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"marketdoctors.com/admin-gateway/internal/api"
	"marketdoctors.com/admin-gateway/internal/config"
	"marketdoctors.com/admin-gateway/internal/metrics"
	"marketdoctors.com/admin-gateway/internal/onesignal"
	"marketdoctors.com/admin-gateway/internal/payout"
	"marketdoctors.com/admin-gateway/internal/paystack"
	"marketdoctors.com/admin-gateway/internal/session"
	"marketdoctors.com/admin-gateway/internal/store"
	"marketdoctors.com/admin-gateway/internal/strapi"
	"marketdoctors.com/admin-gateway/pkg/zerolog_config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Set app prefix
	zerolog_config.SetAppPrefix("admin-gateway")

	// Initialize zerolog, with Elasticsearch when configured
	zerolog_config.StartupWithEnv(cfg.ElasticsearchURL, "logs", cfg.LogLevel)

	log.Info().Msg("Starting admin-gateway service")

	// Start system metrics collection
	metrics.StartSystemMetrics(30 * time.Second)

	// Gateway-owned state: sessions and payout locks
	documents, err := store.Connect(cfg.CouchbaseURL, cfg.CouchbaseUsername, cfg.CouchbasePassword, cfg.CouchbaseBucket)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Couchbase")
	}

	// Upstream clients
	content := strapi.NewClient(cfg.ContentAPIURL, cfg.ContentAPITimeout)
	gateway := paystack.NewClient(cfg.PaystackURL, cfg.PaystackSecretKey)
	notifier := onesignal.NewClient(cfg.OneSignalURL, cfg.OneSignalAppID, cfg.OneSignalAPIKey)

	sessions := session.NewStore(documents, cfg.SessionTTL)
	locker := store.NewPayoutLocker(documents, cfg.PayoutLockTTL)
	payer := payout.New(gateway, content, locker)

	server := api.NewServer(content, payer, notifier, sessions)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.Router(),
	}

	// Listen for shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Msg("Server starting")

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().
				Err(err).
				Msg("Failed to start server")
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Info().Msg("Received shutdown signal, shutting down gracefully...")

	// Shutdown server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	// Close database connection
	log.Info().Msg("Closing database connection...")
	if err := documents.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close database connection")
	}

	log.Info().Msg("Admin gateway shutdown complete")
}
