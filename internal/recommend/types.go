// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

package recommend

import (
	"time"

	"github.com/hzerouali/tendermatch/internal/models"
)

// Criterion identifies one of the six scoring dimensions.
type Criterion string

// The scoring criteria, in canonical order.
const (
	CriterionSector         Criterion = "sector"
	CriterionGeography      Criterion = "geography"
	CriterionFinancial      Criterion = "financial"
	CriterionTemporal       Criterion = "temporal"
	CriterionKeyword        Criterion = "keyword"
	CriterionClassification Criterion = "classification"
)

// AllCriteria returns the criteria in canonical order. The slice is freshly
// allocated; callers may modify it.
func AllCriteria() []Criterion {
	return []Criterion{
		CriterionSector,
		CriterionGeography,
		CriterionFinancial,
		CriterionTemporal,
		CriterionKeyword,
		CriterionClassification,
	}
}

// Valid reports whether the value is a known criterion.
func (c Criterion) Valid() bool {
	switch c {
	case CriterionSector, CriterionGeography, CriterionFinancial,
		CriterionTemporal, CriterionKeyword, CriterionClassification:
		return true
	}
	return false
}

// Tier classifies a total score into a relevance band.
type Tier string

// Relevance tiers. Boundaries are inclusive lower bounds configured in
// ThresholdsConfig.
const (
	TierVeryRelevant Tier = "very_relevant"
	TierRelevant     Tier = "relevant"
	TierLow          Tier = "low_relevance"
)

// CriterionScores holds one score in [0,1] per criterion.
type CriterionScores map[Criterion]float64

// Score is the outcome of one criterion scorer for one profile/tender pair.
// Reason and Penalty are optional human-readable explanations surfaced in
// the API response.
type Score struct {
	Value   float64
	Reason  string
	Penalty string
}

// Scorer evaluates one criterion for a profile/tender pair. Implementations
// must be pure: no I/O, no shared mutable state, value clamped to [0,1],
// and never an error on missing optional fields.
type Scorer interface {
	// Criterion identifies which weight applies to this scorer.
	Criterion() Criterion

	// Evaluate scores the pair at the given instant.
	Evaluate(profile *models.UserProfile, tender *models.Tender, now time.Time) Score
}

// ScoreBreakdown is the full scoring outcome for one tender.
type ScoreBreakdown struct {
	TenderID  string          `json:"tender_id"`
	Scores    CriterionScores `json:"scores"`
	Total     float64         `json:"total"`
	Tier      Tier            `json:"tier"`
	Reasons   []string        `json:"reasons,omitempty"`
	Penalties []string        `json:"penalties,omitempty"`

	// Excluded is set when the tender hit a profile exclusion list; the
	// total is forced to zero in that case.
	Excluded bool `json:"excluded,omitempty"`
}

// Recommendation pairs a tender with its breakdown in a ranked result.
type Recommendation struct {
	Tender    models.Tender  `json:"tender"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}

// ItemError reports a per-item failure isolated during batch processing.
type ItemError struct {
	TenderID string `json:"tender_id"`
	Reason   string `json:"reason"`
}

// Options tunes one Recommend call.
type Options struct {
	// Limit is the top-K to return. 0 selects the configured default;
	// values above the configured maximum are capped.
	Limit int

	// MinScore overrides the configured minimum total. Nil keeps the
	// configured value; a pointer to 0 disables filtering.
	MinScore *float64

	// Now fixes the scoring instant, for reproducible evaluation.
	// Zero means time.Now().
	Now time.Time
}

// Result is the outcome of one Recommend call.
type Result struct {
	Items           []Recommendation `json:"items"`
	Skipped         []ItemError      `json:"skipped,omitempty"`
	TotalCandidates int              `json:"total_candidates"`
	EvaluatedAt     time.Time        `json:"evaluated_at"`
}

// AdaptReport summarizes one learning batch.
type AdaptReport struct {
	Applied int         `json:"applied"`
	Skipped []ItemError `json:"skipped,omitempty"`
}

// Status is a snapshot of the engine for the status endpoint.
type Status struct {
	LearningEnabled bool   `json:"learning_enabled"`
	AdapterState    string `json:"adapter_state"`
	EventsApplied   uint64 `json:"events_applied"`
	EventsSkipped   uint64 `json:"events_skipped"`
	ScoredTotal     uint64 `json:"scored_total"`
	RecommendCalls  uint64 `json:"recommend_calls"`
}
