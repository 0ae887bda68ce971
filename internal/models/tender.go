// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

package models

import (
	"time"
)

// Tender is a public procurement opportunity (appel d'offres) as ingested
// from an external catalog. ID is the publishing body's tender number and is
// unique across the catalog.
//
// Budget and Caution are optional; nil means the amount was not published
// and the financial criterion applies no penalty for it.
type Tender struct {
	ID           string `json:"id" validate:"required"`
	Reference    string `json:"reference,omitempty"`
	Organization string `json:"organization,omitempty"`

	// Subject is the published title; AnalysisText is the longer body used
	// for keyword extraction.
	Subject      string `json:"subject" validate:"required"`
	AnalysisText string `json:"analysis_text,omitempty"`

	City           string `json:"city,omitempty"`
	Sector         string `json:"sector,omitempty"`
	Classification string `json:"classification,omitempty"`

	Budget  *float64 `json:"budget,omitempty" validate:"omitempty,gte=0"`
	Caution *float64 `json:"caution,omitempty" validate:"omitempty,gte=0"`

	Deadline    time.Time `json:"deadline" validate:"required"`
	PublishedAt time.Time `json:"published_at,omitempty"`
}

// DaysToDeadline returns the whole days remaining before the deadline at the
// given instant. Negative values mean the deadline has passed.
func (t *Tender) DaysToDeadline(now time.Time) int {
	return int(t.Deadline.Sub(now).Hours() / 24)
}

// Expired reports whether the submission deadline has passed.
func (t *Tender) Expired(now time.Time) bool {
	return t.Deadline.Before(now)
}
