package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/DoyleJ11/hoops-scoreboard/internal/config"
	"github.com/DoyleJ11/hoops-scoreboard/internal/httpapi"
	"github.com/DoyleJ11/hoops-scoreboard/internal/hub"
	"github.com/DoyleJ11/hoops-scoreboard/internal/logging"
	"github.com/DoyleJ11/hoops-scoreboard/internal/session"
	"github.com/DoyleJ11/hoops-scoreboard/internal/ws"
)

func main() {
	configPath := flag.String("config", os.Getenv("SCOREBOARD_CONFIG"), "path to YAML config file")
	flag.Parse()

	// Load .env file if it exists
	envErr := godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		logger.Warn("could not load .env file", zap.Error(envErr))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := hub.NewHub(ctx, session.Options{
		Clock:        clockwork.NewRealClock(),
		TickInterval: cfg.Session.TickInterval,
		Logger:       logger,
	})

	// Build the router *with* the hub injected
	handler := httpapi.SetupRoutes(h, httpapi.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		WS: ws.Options{
			OriginPatterns: cfg.Server.AllowedOrigins,
			OutboxSize:     cfg.Session.ClientBuffer,
		},
	}, logger)

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: handler,
	}

	go func() {
		logger.Info("listening",
			zap.String("addr", cfg.Server.Addr),
			zap.Duration("tick_interval", cfg.Session.TickInterval))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	// the hub and every session hang off ctx and are already stopping
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
