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

// Classification scores exact membership of the tender's classification in
// the profile's preference list. No fuzzy matching: either the
// classification is preferred or it is not. An empty preference list or a
// missing tender classification scores neutral.
type Classification struct{}

// NewClassification builds the classification scorer.
func NewClassification() *Classification {
	return &Classification{}
}

// Criterion implements recommend.Scorer.
func (c *Classification) Criterion() recommend.Criterion {
	return recommend.CriterionClassification
}

// Evaluate implements recommend.Scorer.
func (c *Classification) Evaluate(profile *models.UserProfile, tender *models.Tender, _ time.Time) recommend.Score {
	if len(profile.PreferredClassifications) == 0 || tender.Classification == "" {
		return recommend.Score{Value: neutralScore}
	}

	if containsFold(profile.PreferredClassifications, tender.Classification) {
		return recommend.Score{
			Value:  1.0,
			Reason: fmt.Sprintf("Classification préférée: %s", tender.Classification),
		}
	}
	return recommend.Score{Value: 0}
}

// compile-time interface compliance check
var _ recommend.Scorer = (*Classification)(nil)
