// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// GetWeights handles GET /api/v1/weights/{userID}. Users without a
// personalized vector get the configured defaults.
func (h *Handlers) GetWeights(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	userID := chi.URLParam(r, "userID")

	vector := h.engine.Weights().Get(userID)

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"user_id": userID,
		"weights": vector.ToMap(),
	}, started)
}

// ResetWeights handles DELETE /api/v1/weights/{userID}. The personalized
// vector is dropped and the defaults take over again.
func (h *Handlers) ResetWeights(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	userID := chi.URLParam(r, "userID")

	if err := h.engine.Weights().Delete(userID); err != nil {
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR",
			"Failed to reset weight vector", err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"user_id": userID,
		"weights": h.engine.Weights().Get(userID).ToMap(),
	}, started)
}
