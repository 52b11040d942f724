package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/ghpulse/ghpulse/internal/config"
	"github.com/ghpulse/ghpulse/internal/github"
	"github.com/ghpulse/ghpulse/internal/httpserver"
	"github.com/ghpulse/ghpulse/internal/metrics"
	"github.com/ghpulse/ghpulse/internal/observability"
	"github.com/ghpulse/ghpulse/internal/poller"
	"github.com/ghpulse/ghpulse/internal/store"
)

// main boots the service: config → store → poller → HTTP server.
func main() {
	// Local dev convenience; a missing .env is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	observability.SetupLogging(cfg.LogLevel)
	obs := observability.NewMetrics()

	// The store is created once here and shared by reference between
	// the single poller writer and the API readers.
	st := store.NewMemoryStore()

	feed := github.NewClient(cfg.GitHubAPIURL, cfg.GitHubToken, cfg.PerPage, cfg.HTTPTimeout)
	go poller.New(feed, st, cfg.PollInterval, obs).Run(context.Background())

	router := httpserver.NewRouter(st, metrics.NewEngine(st), obs)

	slog.Info("server started", "addr", cfg.Addr, "authenticated", cfg.GitHubToken != "")
	log.Fatal(router.Run(cfg.Addr))
}
