// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hzerouali/tendermatch/internal/metrics"
	"github.com/hzerouali/tendermatch/internal/models"
	"github.com/hzerouali/tendermatch/internal/store"
)

// PostInteraction handles POST /api/v1/interactions. The event is appended
// to the interaction log; the learning service drains the log
// asynchronously, so recording never blocks on weight adaptation.
func (h *Handlers) PostInteraction(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req InteractionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid interaction payload", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		metrics.ValidationFailures.WithLabelValues("interaction").Inc()
		respondValidationError(w, apiErr)
		return
	}
	if !req.Kind.Valid() {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"Unknown interaction kind", nil)
		return
	}

	event := models.InteractionEvent{
		UserID:       req.UserID,
		TenderID:     req.TenderID,
		Kind:         req.Kind,
		DwellSeconds: req.DwellSeconds,
	}
	seq, err := h.store.Interactions.Append(r.Context(), &event)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR",
			"Failed to record interaction", err)
		return
	}

	respondSuccess(w, http.StatusCreated, map[string]interface{}{
		"id":  event.ID,
		"seq": seq,
	}, started)
}

// ListInteractions handles GET /api/v1/interactions/{userID}, newest first.
func (h *Handlers) ListInteractions(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	userID := chi.URLParam(r, "userID")
	limit := getIntParam(r, "limit", h.cfg.API.DefaultPageSize)
	if limit > h.cfg.API.MaxPageSize {
		limit = h.cfg.API.MaxPageSize
	}

	events, err := h.store.Interactions.ListUser(r.Context(), userID, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR",
			"Failed to list interactions", err)
		return
	}
	if events == nil {
		events = []store.LoggedEvent{}
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"count":  len(events),
	}, started)
}
