// Package main is the entry point for the Pawder pet server.
// It only handles dependency injection and server initialization.
// NO business logic belongs here.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jinxed-vi/pawder-bot/internal/engine"
	"github.com/jinxed-vi/pawder-bot/internal/infra/storage"
	"github.com/jinxed-vi/pawder-bot/internal/network"
	"github.com/jinxed-vi/pawder-bot/internal/platform/config"
	"github.com/jinxed-vi/pawder-bot/internal/platform/logger"
	"github.com/jinxed-vi/pawder-bot/internal/platform/metrics"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[PAWDER] config: %v", err)
	}

	appLogger := logger.NewLogger(cfg.LogLevel)
	appLogger.Info("Initializing Pawder pet server...")

	appLogger.Infof("Initializing SQLite database %q...", cfg.DBPath)
	db, err := storage.InitSQLite(cfg.DBPath)
	if err != nil {
		appLogger.Error("Failed to initialize SQLite: " + err.Error())
		os.Exit(1)
	}
	defer db.Close()
	store := storage.NewStore(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appLogger.Info("Bootstrapping stat engine...")
	svc := engine.NewService(store, appLogger, engine.Config{
		VitalityStat:   cfg.VitalityStat,
		NeglectPenalty: cfg.NeglectPenalty,
		PrizeCooldown:  cfg.PrizeCooldown,
	})

	if err := svc.SeedDefaults(ctx); err != nil {
		appLogger.Error("Failed to seed defaults: " + err.Error())
		os.Exit(1)
	}

	appLogger.Info("Bootstrapping WebSocket Hub...")
	gateway := network.NewGateway(svc, appLogger)
	hub := network.NewHub(gateway, appLogger)
	go hub.Run(ctx)

	sweeper := engine.NewSweeper(svc, hub, appLogger, cfg.NotifyTimeout)
	if err := sweeper.Start(cfg.SweepSchedule); err != nil {
		appLogger.Error("Failed to schedule sweep: " + err.Error())
		os.Exit(1)
	}
	defer sweeper.Stop()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	mux.Handle("/metrics", metrics.Handler())

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: mux}
	go func() {
		appLogger.Infof("HTTP API & WS server listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[PAWDER] server failed: %v", err)
		}
	}()

	appLogger.Info("Server running. Press Ctrl+C to exit.")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down...")
	srv.Shutdown(context.Background())
}
