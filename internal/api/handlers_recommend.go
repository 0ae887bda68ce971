// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hzerouali/tendermatch/internal/models"
	"github.com/hzerouali/tendermatch/internal/recommend"
	"github.com/hzerouali/tendermatch/internal/store"
)

// recommendTimeout bounds one scoring or recommendation request.
const recommendTimeout = 10 * time.Second

// Score handles POST /api/v1/score. It evaluates a single profile/tender
// pair and returns the full criterion breakdown.
func (h *Handlers) Score(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req ScoreRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid score payload", err)
		return
	}

	profile, apiStatus, err := h.resolveProfile(r.Context(), &req)
	if err != nil {
		respondError(w, apiStatus, errorCodeFor(apiStatus), err.Error(), nil)
		return
	}
	tender, apiStatus, err := h.resolveTender(r.Context(), &req)
	if err != nil {
		respondError(w, apiStatus, errorCodeFor(apiStatus), err.Error(), nil)
		return
	}

	breakdown, err := h.engine.Score(profile, tender, time.Now())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "SCORING_ERROR",
			"Failed to score tender", err)
		return
	}

	respondSuccess(w, http.StatusOK, breakdown, started)
}

// Recommendations handles GET /api/v1/recommendations/{userID}. Candidates
// are the active tenders in the catalog; limit and min_score query
// parameters tune the result.
func (h *Handlers) Recommendations(w http.ResponseWriter, r *http.Request) {
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

	now := time.Now()
	candidates, err := h.store.Tenders.ListActive(r.Context(), now)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR",
			"Failed to list candidate tenders", err)
		return
	}

	opts := recommend.Options{
		Limit: getIntParam(r, "limit", 0),
		Now:   now,
	}
	if minScore, ok := getFloatParam(r, "min_score"); ok {
		opts.MinScore = &minScore
	}

	ctx, cancel := context.WithTimeout(r.Context(), recommendTimeout)
	defer cancel()

	result, err := h.engine.Recommend(ctx, profile, candidates, opts)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "RECOMMENDATION_ERROR",
			"Failed to generate recommendations", err)
		return
	}

	respondSuccess(w, http.StatusOK, result, started)
}

// resolveProfile picks the inline profile or loads the referenced one.
func (h *Handlers) resolveProfile(ctx context.Context, req *ScoreRequest) (*models.UserProfile, int, error) {
	if req.Profile != nil {
		if req.Profile.UserID == "" {
			req.Profile.UserID = req.UserID
		}
		if req.Profile.UserID == "" {
			return nil, http.StatusBadRequest, errors.New("inline profile needs a user_id")
		}
		return req.Profile, 0, nil
	}
	if req.UserID == "" {
		return nil, http.StatusBadRequest, errors.New("user_id or an inline profile is required")
	}

	profile, err := h.store.Profiles.Get(ctx, req.UserID)
	if errors.Is(err, store.ErrProfileNotFound) {
		return nil, http.StatusNotFound, errors.New("profile not found")
	}
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	return profile, 0, nil
}

// resolveTender picks the inline tender or loads the referenced one.
func (h *Handlers) resolveTender(ctx context.Context, req *ScoreRequest) (*models.Tender, int, error) {
	if req.Tender != nil {
		if req.Tender.ID == "" {
			req.Tender.ID = req.TenderID
		}
		if req.Tender.ID == "" {
			return nil, http.StatusBadRequest, errors.New("inline tender needs an id")
		}
		return req.Tender, 0, nil
	}
	if req.TenderID == "" {
		return nil, http.StatusBadRequest, errors.New("tender_id or an inline tender is required")
	}

	tender, err := h.store.Tenders.Get(ctx, req.TenderID)
	if errors.Is(err, store.ErrTenderNotFound) {
		return nil, http.StatusNotFound, errors.New("tender not found")
	}
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	return tender, 0, nil
}

// errorCodeFor maps a status to the envelope error code.
func errorCodeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusNotFound:
		return "NOT_FOUND"
	default:
		return "STORAGE_ERROR"
	}
}
