package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/linkscore/internal/adapters/handler/http"
	"github.com/vncsmyrnk/linkscore/internal/app"
	"github.com/vncsmyrnk/linkscore/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.Fatalf("Error loading .env file: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatal(err)
	}

	log, err := app.NewLogger(cfg)
	if err != nil {
		logrus.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stores, err := app.OpenStores(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer stores.Close()

	cache, cachePing, err := app.OpenCache(cfg)
	if err != nil {
		log.Fatal(err)
	}

	clk, err := app.NewClock(cfg)
	if err != nil {
		log.Fatal(err)
	}

	svc := app.NewServices(cfg, stores, cache, clk, log)

	checks := map[string]http.HealthCheck{"database": stores.Ping}
	if cachePing != nil {
		checks["cache"] = cachePing
	}

	handler := http.NewHandler(http.Handlers{
		Vote:     http.NewVoteHandler(svc.Votes, log),
		Score:    http.NewScoreHandler(svc.Scores, log),
		Settings: http.NewSettingsHandler(svc.Settings, log),
		User:     http.NewUserHandler(svc.Users, log),
		Health:   http.NewHealthHandler(checks, log),
	}, http.RouterOptions{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AdminToken:     cfg.Server.AdminToken,
		Log:            log,
	})

	server := &stdhttp.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"addr":     server.Addr,
			"database": cfg.Database.Driver,
			"cache":    cfg.Cache.Driver,
			"admin":    cfg.Server.AdminToken != "",
		}).Info("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Info("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}
