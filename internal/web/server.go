// Danmakuview - Danmaku Frequency Analytics Viewer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/danmakuview

// Package web serves the viewer: two server-rendered views under /ui, the
// form actions that drive the analyzer, a JSON mirror of the listing, the
// notification websocket and static assets.
package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/danmakuview/internal/analyzer"
	"github.com/tomtom215/danmakuview/internal/config"
	"github.com/tomtom215/danmakuview/internal/i18n"
	"github.com/tomtom215/danmakuview/internal/middleware"
	"github.com/tomtom215/danmakuview/internal/models"
	"github.com/tomtom215/danmakuview/internal/notify"
)

// Analyzer is the subset of analyzer.API the views call.
type Analyzer interface {
	Fetch(ctx context.Context, keyword string, n int) error
	TopDanmakus(ctx context.Context, n int) ([]models.DanmakuFrequency, error)
	ExportExcel(ctx context.Context, filename string) error
	DBInfo(ctx context.Context) (*models.DBInfo, error)
	WordCloud(ctx context.Context) (*analyzer.Image, error)
}

// Deps are the collaborators a Server needs. Hub may be nil to serve
// without live notifications.
type Deps struct {
	Config   *config.Config
	Analyzer Analyzer
	Bundle   *i18n.Bundle
	Center   *notify.Center
	Flash    *notify.Flash
	Hub      *notify.Hub
}

// Server holds the view handlers.
type Server struct {
	cfg      *config.Config
	api      Analyzer
	bundle   *i18n.Bundle
	center   *notify.Center
	flash    *notify.Flash
	hub      *notify.Hub
	renderer *Renderer
}

// NewServer validates deps and parses the templates.
func NewServer(deps Deps) (*Server, error) {
	switch {
	case deps.Config == nil:
		return nil, errors.New("web: config is required")
	case deps.Analyzer == nil:
		return nil, errors.New("web: analyzer is required")
	case deps.Bundle == nil:
		return nil, errors.New("web: i18n bundle is required")
	case deps.Center == nil:
		return nil, errors.New("web: notification center is required")
	case deps.Flash == nil:
		return nil, errors.New("web: flash store is required")
	}

	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	return &Server{
		cfg:      deps.Config,
		api:      deps.Analyzer,
		bundle:   deps.Bundle,
		center:   deps.Center,
		flash:    deps.Flash,
		hub:      deps.Hub,
		renderer: renderer,
	}, nil
}

// Router builds the chi router.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(s.corsHandler())
	r.Use(middleware.SecurityHeaders)

	r.NotFound(s.handleNotFound)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	if s.hub != nil {
		r.Get(BasePath+"/ws", s.hub.Handler(s.cfg.Security.CORSOrigins))
	}

	r.Group(func(r chi.Router) {
		r.Use(chimiddleware.Compress(5, "text/html", "text/css", "text/javascript", "application/json"))

		for _, route := range Routes {
			r.Get(route.Href(), s.viewHandler(route.View))
		}
		r.Get(BasePath+"/wordcloud.png", s.handleWordCloud)
		r.Handle(BasePath+"/assets/*", assetHandler())

		r.Group(func(r chi.Router) {
			r.Use(s.rateLimit())
			r.Post(routeFor(ViewMain).Href()+"/fetch", s.handleFetch)
			r.Post(routeFor(ViewDanmaku).Href()+"/export", s.handleExport)
			r.Get(BasePath+"/data/top_danmakus", s.handleTopDanmakusJSON)
		})
	})

	return r
}

func (s *Server) corsHandler() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.Security.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         86400,
	})
}

// rateLimit limits actions per client IP.
func (s *Server) rateLimit() func(http.Handler) http.Handler {
	sec := s.cfg.Security
	if sec.RateLimitDisabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		sec.RateLimitRequests,
		sec.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			respondError(w, r, http.StatusTooManyRequests, "TOO_MANY_REQUESTS", "rate limit exceeded", nil)
		}),
	)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{"status": "ok"}
	if s.hub != nil {
		data["notification_clients"] = s.hub.ClientCount()
	}
	respondSuccess(w, r, data, newMeta(r))
}
