package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Gabrielb-Webdev/smash-ban-server/internal/config"
	"github.com/Gabrielb-Webdev/smash-ban-server/internal/httpapi"
	"github.com/Gabrielb-Webdev/smash-ban-server/internal/hub"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	rules, err := cfg.Rules()
	if err != nil {
		logger.Fatal("failed to build ruleset", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	h := hub.NewHub(ctx, logger)

	// Periodic expiry of idle sessions.
	c := cron.New()
	if _, err := c.AddFunc(cfg.SweepSpec, func() {
		h.Inbox() <- hub.Sweep{IdleFor: cfg.SessionTTL}
	}); err != nil {
		logger.Fatal("invalid sweep schedule", zap.Error(err))
	}
	c.Start()
	defer c.Stop()

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: httpapi.SetupRoutes(h, rules, logger),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
