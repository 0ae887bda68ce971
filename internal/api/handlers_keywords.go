// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

package api

import (
	"net/http"
	"time"

	"github.com/hzerouali/tendermatch/internal/recommend/keywords"
)

// ListSectors handles GET /api/v1/sectors.
func (h *Handlers) ListSectors(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	sectors := keywords.AllSectors()

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"sectors": sectors,
		"count":   len(sectors),
	}, started)
}

// SuggestKeywords handles GET /api/v1/keywords/suggest?sector=. An unknown
// sector falls back to generic trade keywords, not an error.
func (h *Handlers) SuggestKeywords(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	sector := r.URL.Query().Get("sector")
	if sector == "" {
		respondError(w, http.StatusBadRequest, "BAD_REQUEST",
			"Query parameter 'sector' is required", nil)
		return
	}

	suggestions := keywords.SuggestForSector(sector)
	if suggestions == nil {
		suggestions = []string{}
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"sector":   sector,
		"keywords": suggestions,
		"count":    len(suggestions),
	}, started)
}

// RelatedKeywords handles GET /api/v1/keywords/related?keyword=&limit=.
func (h *Handlers) RelatedKeywords(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	keyword := r.URL.Query().Get("keyword")
	if keyword == "" {
		respondError(w, http.StatusBadRequest, "BAD_REQUEST",
			"Query parameter 'keyword' is required", nil)
		return
	}
	limit := getIntParam(r, "limit", h.cfg.API.DefaultPageSize)

	related := keywords.Related(keyword, limit)
	if related == nil {
		related = []string{}
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"keyword": keyword,
		"related": related,
		"count":   len(related),
	}, started)
}
