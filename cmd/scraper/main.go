package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Smarter-Poker/tournament-scraper/app/api"
	"github.com/Smarter-Poker/tournament-scraper/app/browser"
	"github.com/Smarter-Poker/tournament-scraper/app/cfg"
	"github.com/Smarter-Poker/tournament-scraper/app/database"
	"github.com/Smarter-Poker/tournament-scraper/app/fetch"
	"github.com/Smarter-Poker/tournament-scraper/app/scrape"
	"github.com/Smarter-Poker/tournament-scraper/app/tasks"
	"github.com/Smarter-Poker/tournament-scraper/app/venue"
)

func main() {
	c, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if c == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if c.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting tournament scraper", "version", cfg.GetVersion())

	db, err := database.NewConnection(c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	migrationVersion, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "migration_version", migrationVersion, "dirty", dirty)

	venueRepo := database.NewVenueRepository(db)
	tournamentRepo := database.NewTournamentRepository(db)

	sources, err := venue.LoadSources(c.VenuesFile)
	if err != nil {
		slog.Error("Failed to load venue sources", "file", c.VenuesFile, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher := fetch.NewFetcher(c.UserAgent, time.Duration(c.RequestTimeout)*time.Second, c.FetchRetries)

	// The browser is optional: without it the run still handles plain HTML
	// targets, and challenge pages fail the venue instead of falling back.
	var renderer scrape.Renderer
	driver, err := browser.NewDriver(ctx, browser.Options{
		UserAgent:   c.UserAgent,
		ChromePath:  c.ChromePath,
		Headless:    c.Headless,
		SettleDelay: time.Duration(c.SettleDelay) * time.Second,
	})
	if err != nil {
		slog.Warn("Browser unavailable, challenge fallback disabled", "error", err)
	} else {
		renderer = driver
		defer driver.Close()
	}

	resolver := venue.NewResolver(venueRepo)
	runner := scrape.NewRunner(venueRepo, tournamentRepo, resolver, fetcher, renderer, sources, scrape.LogNotifier{})

	if c.Serve {
		runDaemon(ctx, c, runner, venueRepo, tournamentRepo)
		return
	}

	stats, err := runner.Run(ctx, scrape.RunOptions{
		State:  c.State,
		Venue:  c.Venue,
		Source: c.Source,
		Limit:  c.Limit,
		Force:  c.Force,
		Prune:  c.Prune,
	})
	if err != nil {
		slog.Error("Scrape run failed", "error", err)
		os.Exit(1)
	}
	if stats.Failed() {
		slog.Error("Run exceeded error threshold", "errors", stats.ErrorCount(), "threshold", scrape.ErrorThreshold)
		os.Exit(1)
	}
}

// runDaemon runs the periodic scheduler and HTTP API until interrupted.
func runDaemon(ctx context.Context, c *cfg.Cfg, runner *scrape.Runner,
	venueRepo database.VenueRepository, tournamentRepo database.TournamentRepository) {
	scheduler := tasks.NewScheduler(runner)
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(venueRepo, tournamentRepo, scheduler)
	server := api.NewServer(handler, c.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + c.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", c.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}
