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

// UpsertProfile handles POST /api/v1/profiles and PUT /api/v1/profiles/{userID}.
// The response echoes the stored profile along with the fields still
// missing for a complete one.
func (h *Handlers) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var profile models.UserProfile
	if err := decodeJSON(r, &profile); err != nil {
		respondError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid profile payload", err)
		return
	}
	if userID := chi.URLParam(r, "userID"); userID != "" {
		profile.UserID = userID
	}

	if apiErr := validateRequest(&profile); apiErr != nil {
		metrics.ValidationFailures.WithLabelValues("profile").Inc()
		respondValidationError(w, apiErr)
		return
	}
	if !profile.BudgetRangeValid() {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"budget_min must not exceed budget_max", nil)
		return
	}
	if profile.Radius != "" && !profile.Radius.Valid() {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"Unknown intervention radius", nil)
		return
	}
	if profile.DelayPreference != "" && !profile.DelayPreference.Valid() {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"Unknown delay preference", nil)
		return
	}

	if err := h.store.Profiles.Put(r.Context(), &profile); err != nil {
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR",
			"Failed to store profile", err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"profile":        profile,
		"missing_fields": profile.MissingFields(),
	}, started)
}

// GetProfile handles GET /api/v1/profiles/{userID}.
func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	userID := chi.URLParam(r, "userID")

	profile, err := h.store.Profiles.Get(r.Context(), userID)
	if errors.Is(err, store.ErrProfileNotFound) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Profile not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR",
			"Failed to read profile", err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"profile":        profile,
		"missing_fields": profile.MissingFields(),
	}, started)
}

// ListProfiles handles GET /api/v1/profiles.
func (h *Handlers) ListProfiles(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	profiles, err := h.store.Profiles.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR",
			"Failed to list profiles", err)
		return
	}
	if profiles == nil {
		profiles = []*models.UserProfile{}
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"profiles": profiles,
		"count":    len(profiles),
	}, started)
}

// DeleteProfile handles DELETE /api/v1/profiles/{userID}. The user's
// personalized weight vector is removed along with the profile.
func (h *Handlers) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	userID := chi.URLParam(r, "userID")

	if err := h.store.Profiles.Delete(r.Context(), userID); err != nil {
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR",
			"Failed to delete profile", err)
		return
	}
	if err := h.engine.Weights().Delete(userID); err != nil {
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR",
			"Failed to delete weight vector", err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"deleted": userID,
	}, started)
}
