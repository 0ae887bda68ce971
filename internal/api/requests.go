// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

package api

import (
	"github.com/hzerouali/tendermatch/internal/models"
)

// ScoreRequest is the body of POST /api/v1/score.
//
// Profile and tender can each be given inline (for ad-hoc evaluation) or
// referenced by ID (resolved from storage). Inline values win.
type ScoreRequest struct {
	UserID   string `json:"user_id,omitempty"`
	TenderID string `json:"tender_id,omitempty"`

	Profile *models.UserProfile `json:"profile,omitempty"`
	Tender  *models.Tender      `json:"tender,omitempty"`
}

// IngestTendersRequest is the body of POST /api/v1/tenders. A single
// tender or a batch can be submitted.
type IngestTendersRequest struct {
	Tenders []models.Tender `json:"tenders" validate:"required,min=1,dive"`
}

// InteractionRequest is the body of POST /api/v1/interactions.
type InteractionRequest struct {
	UserID       string           `json:"user_id" validate:"required"`
	TenderID     string           `json:"tender_id" validate:"required"`
	Kind         models.EventKind `json:"kind" validate:"required"`
	DwellSeconds int              `json:"dwell_seconds,omitempty" validate:"omitempty,min=0"`
}
