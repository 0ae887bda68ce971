// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

package scorers

import (
	"time"

	"github.com/hzerouali/tendermatch/internal/models"
	"github.com/hzerouali/tendermatch/internal/recommend"
)

// Temporal scores the days remaining before the deadline against the
// profile's delay preference. A passed deadline always scores zero.
type Temporal struct{}

// NewTemporal builds the temporal scorer.
func NewTemporal() *Temporal {
	return &Temporal{}
}

// Criterion implements recommend.Scorer.
func (t *Temporal) Criterion() recommend.Criterion {
	return recommend.CriterionTemporal
}

// Evaluate implements recommend.Scorer.
func (t *Temporal) Evaluate(profile *models.UserProfile, tender *models.Tender, now time.Time) recommend.Score {
	if tender.Deadline.IsZero() {
		return recommend.Score{Value: neutralScore}
	}
	if tender.Expired(now) {
		return recommend.Score{Value: 0, Penalty: "Délai de soumission dépassé"}
	}

	days := tender.DaysToDeadline(now)
	preference := profile.DelayPreference
	if preference == "" {
		preference = models.DelayAny
	}

	var value float64
	switch preference {
	case models.DelayShort:
		if days <= 30 {
			value = 1.0
		} else {
			value = clamp01(1 - float64(days-30)/100)
			if value < 0.3 {
				value = 0.3
			}
		}
	case models.DelayMedium:
		if days >= 30 && days <= 90 {
			value = 1.0
		} else {
			value = 0.6
		}
	case models.DelayLong:
		if days > 90 {
			value = 1.0
		} else {
			value = 0.7
		}
	default: // models.DelayAny and unknown values
		value = 0.8
	}

	score := recommend.Score{Value: value}
	if value == 1.0 {
		score.Reason = "Délai conforme à la préférence"
	}
	return score
}

// compile-time interface compliance check
var _ recommend.Scorer = (*Temporal)(nil)
