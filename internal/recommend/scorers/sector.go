// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

package scorers

import (
	"fmt"
	"time"

	"github.com/hzerouali/tendermatch/internal/models"
	"github.com/hzerouali/tendermatch/internal/recommend"
)

// Sector scores whether the tender's sector belongs to the profile's
// declared sectors. Matching is exact after folding; a configurable partial
// score applies to known but unmatched sectors.
type Sector struct {
	partialScore float64
}

// NewSector builds the sector scorer from config.
func NewSector(cfg recommend.ScorerConfig) *Sector {
	return &Sector{
		partialScore: clamp01(cfg.SectorPartialScore),
	}
}

// Criterion implements recommend.Scorer.
func (s *Sector) Criterion() recommend.Criterion {
	return recommend.CriterionSector
}

// Evaluate implements recommend.Scorer.
func (s *Sector) Evaluate(profile *models.UserProfile, tender *models.Tender, _ time.Time) recommend.Score {
	if len(profile.Sectors) == 0 {
		return recommend.Score{Value: neutralScore}
	}
	if tender.Sector == "" {
		return recommend.Score{Value: neutralScore}
	}

	if containsFold(profile.Sectors, tender.Sector) {
		return recommend.Score{
			Value:  1.0,
			Reason: fmt.Sprintf("Secteur correspondant: %s", tender.Sector),
		}
	}

	score := recommend.Score{Value: s.partialScore}
	if s.partialScore == 0 {
		score.Penalty = fmt.Sprintf("Secteur hors activité: %s", tender.Sector)
	}
	return score
}

// compile-time interface compliance check
var _ recommend.Scorer = (*Sector)(nil)
