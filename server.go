package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/baweed/shashki/game/config"
	"github.com/baweed/shashki/game/msgcat"
	"github.com/baweed/shashki/game/network"
	"github.com/baweed/shashki/game/obslog"
)

const shutdownTimeout = 5 * time.Second

func newServer(cfg *config.AppConfig, cat *msgcat.Catalog) *http.Server {
	hub := network.NewHub(cat, cfg.SessionTTL, cfg.MaxSessions)
	router := network.NewRouter(hub, network.RouterOptions{
		Templates: cfg.Templates,
		StaticDir: cfg.StaticDir,
	})
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// runServer serves until ctx is cancelled, then shuts down gracefully.
func runServer(ctx context.Context, cfg *config.AppConfig, cat *msgcat.Catalog) error {
	srv := newServer(cfg, cat)

	errCh := make(chan error, 1)
	go func() {
		obslog.L().Info("server_starting", zap.String("addr", cfg.Addr), zap.String("locale", cat.Locale()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	obslog.L().Info("server_stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
