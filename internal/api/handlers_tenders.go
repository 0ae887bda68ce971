// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hzerouali/tendermatch/internal/metrics"
	"github.com/hzerouali/tendermatch/internal/models"
	"github.com/hzerouali/tendermatch/internal/store"
)

// IngestTenders handles POST /api/v1/tenders. Batches are ingested with
// per-item isolation: bad tenders are reported, good ones stored.
func (h *Handlers) IngestTenders(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req IngestTendersRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid tender payload", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		metrics.ValidationFailures.WithLabelValues("tender").Inc()
		respondValidationError(w, apiErr)
		return
	}

	stored, failures := h.store.Tenders.PutBatch(r.Context(), req.Tenders)

	rejected := make([]string, 0, len(failures))
	for _, failure := range failures {
		rejected = append(rejected, failure.Error())
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"stored":   stored,
		"rejected": rejected,
	}, started)
}

// GetTender handles GET /api/v1/tenders/{tenderID}.
func (h *Handlers) GetTender(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	tenderID := chi.URLParam(r, "tenderID")

	tender, err := h.store.Tenders.Get(r.Context(), tenderID)
	if errors.Is(err, store.ErrTenderNotFound) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Tender not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR",
			"Failed to read tender", err)
		return
	}

	respondSuccess(w, http.StatusOK, tender, started)
}

// ListTenders handles GET /api/v1/tenders. With ?active=true only tenders
// whose deadline has not passed are returned.
func (h *Handlers) ListTenders(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var tenders []models.Tender
	var err error
	if r.URL.Query().Get("active") == "true" {
		tenders, err = h.store.Tenders.ListActive(r.Context(), time.Now())
	} else {
		tenders, err = h.store.Tenders.List(r.Context())
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR",
			"Failed to list tenders", err)
		return
	}
	if tenders == nil {
		tenders = []models.Tender{}
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"tenders": tenders,
		"count":   len(tenders),
	}, started)
}

// DeleteTender handles DELETE /api/v1/tenders/{tenderID}.
func (h *Handlers) DeleteTender(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	tenderID := chi.URLParam(r, "tenderID")

	if err := h.store.Tenders.Delete(r.Context(), tenderID); err != nil {
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR",
			"Failed to delete tender", err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"deleted": tenderID,
	}, started)
}
