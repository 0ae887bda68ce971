// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hzerouali/tendermatch/internal/config"
	"github.com/hzerouali/tendermatch/internal/recommend"
	"github.com/hzerouali/tendermatch/internal/store"
)

// Router wires the handlers and middleware into a Chi handler tree.
type Router struct {
	handlers      *Handlers
	chiMiddleware *ChiMiddleware
}

// NewRouter builds the router from the application config.
func NewRouter(cfg *config.Config, engine *recommend.Engine, st *store.Store) *Router {
	mwConfig := DefaultChiMiddlewareConfig()
	mwConfig.CORSAllowedOrigins = cfg.API.CORSOrigins
	mwConfig.RateLimitRequests = cfg.API.RateLimitReqs
	mwConfig.RateLimitWindow = cfg.API.RateLimitWindow
	mwConfig.RateLimitDisabled = cfg.API.RateLimitDisabled

	return &Router{
		handlers:      NewHandlers(cfg, engine, st),
		chiMiddleware: NewChiMiddleware(mwConfig),
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(RequestLogging())
	r.Use(RequestMetrics())
	r.Use(router.chiMiddleware.CORS())

	// Liveness and Prometheus scraping stay outside the rate limit so
	// orchestrators and scrapers are never throttled.
	r.Get("/healthz", router.handlers.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())

		r.Get("/status", router.handlers.Status)

		r.Route("/profiles", func(r chi.Router) {
			r.Post("/", router.handlers.UpsertProfile)
			r.Get("/", router.handlers.ListProfiles)
			r.Put("/{userID}", router.handlers.UpsertProfile)
			r.Get("/{userID}", router.handlers.GetProfile)
			r.Delete("/{userID}", router.handlers.DeleteProfile)
		})

		r.Route("/tenders", func(r chi.Router) {
			r.Post("/", router.handlers.IngestTenders)
			r.Get("/", router.handlers.ListTenders)
			r.Get("/{tenderID}", router.handlers.GetTender)
			r.Delete("/{tenderID}", router.handlers.DeleteTender)
		})

		r.Post("/score", router.handlers.Score)
		r.Get("/recommendations/{userID}", router.handlers.Recommendations)

		r.Route("/interactions", func(r chi.Router) {
			r.Post("/", router.handlers.PostInteraction)
			r.Get("/{userID}", router.handlers.ListInteractions)
		})

		r.Route("/keywords", func(r chi.Router) {
			r.Get("/suggest", router.handlers.SuggestKeywords)
			r.Get("/related", router.handlers.RelatedKeywords)
		})
		r.Get("/sectors", router.handlers.ListSectors)

		r.Route("/weights/{userID}", func(r chi.Router) {
			r.Get("/", router.handlers.GetWeights)
			r.Delete("/", router.handlers.ResetWeights)
		})
	})

	return r
}
