// Danmakuview - Danmaku Frequency Analytics Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/danmakuview

// Package main is the entry point for the Danmakuview web viewer.
//
// The viewer is a thin front-end over the danmaku analyzer API. It renders
// two views under /ui (Main and Danmaku), forwards fetch and export actions
// to the analyzer, and pushes notifications to open pages over a websocket.
//
// # Startup Order
//
//  1. Configuration (koanf: defaults, config.yaml, environment)
//  2. Logging (zerolog)
//  3. Analyzer client, optionally behind a circuit breaker, and its API
//  4. Localization (zh-CN by default) and notifications
//  5. chi router with the views
//  6. HTTP server and notification hub under a suture supervisor tree
//
// # Example Usage
//
//	export ANALYZER_BASE_URL=http://localhost:8080/api/
//	export HTTP_PORT=8081
//	./danmakuview
//
// Then open http://localhost:8081/ui/main.
//
// # Signal Handling
//
// SIGINT and SIGTERM stop the tree. The HTTP server drains in-flight
// requests and the hub closes every websocket client before exit.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/danmakuview/internal/analyzer"
	"github.com/tomtom215/danmakuview/internal/config"
	"github.com/tomtom215/danmakuview/internal/i18n"
	"github.com/tomtom215/danmakuview/internal/logging"
	"github.com/tomtom215/danmakuview/internal/notify"
	"github.com/tomtom215/danmakuview/internal/supervisor"
	"github.com/tomtom215/danmakuview/internal/supervisor/services"
	"github.com/tomtom215/danmakuview/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	logging.Info().
		Str("analyzer", cfg.Analyzer.BaseURL).
		Dur("analyzer_timeout", cfg.Analyzer.Timeout).
		Bool("circuit_breaker", cfg.Analyzer.CircuitBreaker).
		Str("locale", cfg.UI.Locale).
		Msg("Starting Danmakuview")

	api, err := newAnalyzerAPI(&cfg.Analyzer)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create analyzer client")
	}

	bundle, err := i18n.New(cfg.UI.Locale)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load translations")
	}

	hub := notify.NewHub()
	center := notify.NewCenter(cfg.UI.NotifyPosition, cfg.UI.NotifyTimeout, hub)
	flash := notify.NewFlash([]byte(cfg.UI.FlashHashKey), config.UIRoot)
	if cfg.UI.FlashHashKey == "" {
		logging.Warn().Msg("UI_FLASH_HASH_KEY not set, pending notifications will not survive a restart")
	}

	srv, err := web.NewServer(web.Deps{
		Config:   cfg,
		Analyzer: api,
		Bundle:   bundle,
		Center:   center,
		Flash:    flash,
		Hub:      hub,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create web server")
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      srv.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddMessagingService(services.NewNotifyHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, tree.Config().ShutdownTimeout).
		WithEntryURL(cfg.Server.EntryURL()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for services to stop")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	logging.Info().Msg("Danmakuview stopped")
}

// newAnalyzerAPI builds the analyzer façade, wrapping the transport in a
// circuit breaker when configured.
func newAnalyzerAPI(cfg *config.AnalyzerConfig) (*analyzer.API, error) {
	client, err := analyzer.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	if !cfg.CircuitBreaker {
		return analyzer.NewAPI(client), nil
	}
	logging.Info().Msg("Analyzer circuit breaker enabled")
	return analyzer.NewAPI(analyzer.NewCircuitBreakerClient(client)), nil
}
