// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

package api

import (
	"net/http"
	"time"

	"github.com/hzerouali/tendermatch/internal/config"
	"github.com/hzerouali/tendermatch/internal/recommend"
	"github.com/hzerouali/tendermatch/internal/store"
)

// Handlers carries the dependencies shared by all endpoint handlers.
type Handlers struct {
	cfg       *config.Config
	engine    *recommend.Engine
	store     *store.Store
	startedAt time.Time
}

// NewHandlers wires the handler set.
func NewHandlers(cfg *config.Config, engine *recommend.Engine, st *store.Store) *Handlers {
	return &Handlers{
		cfg:       cfg,
		engine:    engine,
		store:     st,
		startedAt: time.Now(),
	}
}

// Health handles GET /healthz. It reports liveness only; readiness
// concerns (storage, engine) surface through /api/v1/status.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(h.startedAt).Round(time.Second).String(),
	}, time.Now())
}

// Status handles GET /api/v1/status with an engine and catalog snapshot.
func (h *Handlers) Status(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	tenderCount, err := h.store.Tenders.Count(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR",
			"Failed to read tender catalog", err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"engine":  h.engine.Status(),
		"tenders": tenderCount,
		"uptime":  time.Since(h.startedAt).Round(time.Second).String(),
	}, started)
}
