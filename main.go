package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"rumor-detection/auth"
	"rumor-detection/config"
	"rumor-detection/database"
	"rumor-detection/handlers"
	"rumor-detection/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// @title Rumor Detection API
// @version 1.0.0
// @description Rumor detection backend powered by DeepSeek.
// @BasePath /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log := newLogger(cfg.Logging)
	slog.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(1)
	}
	if cfg.DeepSeek.APIKey == "" {
		log.Warn("DEEPSEEK_API_KEY is not set; every detection will use the fallback result")
	}

	if err := database.InitDB(cfg.Database.DSN); err != nil {
		log.Error("init database", "error", err)
		os.Exit(1)
	}
	db := database.GetDB()

	classifier := services.NewDeepSeekClient(services.DeepSeekOptions{
		APIKey:         cfg.DeepSeek.APIKey,
		BaseURL:        cfg.DeepSeek.BaseURL,
		Model:          cfg.DeepSeek.Model,
		Timeout:        cfg.DeepSeek.Timeout,
		BatchTimeout:   cfg.DeepSeek.BatchTimeout,
		MaxTokens:      cfg.DeepSeek.MaxTokens,
		BatchMaxTokens: cfg.DeepSeek.BatchMaxTokens,
		Temperature:    cfg.DeepSeek.Temperature,
		BatchItemRunes: cfg.DeepSeek.BatchItemRunes,
		Logger:         log,
	})

	gin.SetMode(cfg.Server.GinMode)
	router := handlers.NewRouter(handlers.Deps{
		Users:      services.NewUserService(db),
		Tokens:     auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL),
		Detections: services.NewDetectionService(db, classifier, log),
		Stats:      services.NewStatsService(db),
		Logger:     log,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", "addr", cfg.Server.Addr, "docs", "/swagger/index.html")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
