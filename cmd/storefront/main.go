// Package main запускает HTTP-сервер витрины аукциона.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/auction-storefront/internal/auctionapi"
	"github.com/mmeshcher/auction-storefront/internal/config"
	"github.com/mmeshcher/auction-storefront/internal/handler"
	"github.com/mmeshcher/auction-storefront/internal/metrics"
	"github.com/mmeshcher/auction-storefront/internal/model"
	"github.com/mmeshcher/auction-storefront/internal/service"
)

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	return cfg.Build()
}

func main() {
	cfg, err := config.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger initialization error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	sugar := logger.Sugar()

	api := auctionapi.NewClient(cfg.APIURL, cfg.CDNURL)
	svc := service.NewService(api, logger, model.WithHistorySize(cfg.HistorySize))
	metrics.Observe(svc.Bus())

	h := handler.NewHandler(svc, logger)
	r := h.SetupRouter()

	server := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Первичная загрузка каталога; при недоступном API витрина стартует пустой
	g.Go(func() error {
		loadCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		if err := svc.LoadCatalog(loadCtx); err != nil {
			sugar.Warnw("initial catalog load failed", "error", err)
			return nil
		}
		sugar.Infow("catalog loaded", "lots", len(svc.Catalog()))
		return nil
	})

	g.Go(func() error {
		sugar.Infow("starting storefront server", "addr", cfg.RunAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}
