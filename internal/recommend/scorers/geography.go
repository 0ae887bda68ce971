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

// radiusCredit is the score for a tender outside the preferred cities,
// keyed by the profile's intervention radius. A local company gets nothing
// for remote work; a national one is indifferent to the city.
var radiusCredit = map[models.InterventionRadius]float64{
	models.RadiusLocal:         0.0,
	models.RadiusRegional:      0.5,
	models.RadiusNational:      1.0,
	models.RadiusInternational: 1.0,
}

// Geography scores the tender's city against the profile's preferred
// cities and intervention radius. Excluded cities force zero.
type Geography struct{}

// NewGeography builds the geography scorer.
func NewGeography() *Geography {
	return &Geography{}
}

// Criterion implements recommend.Scorer.
func (g *Geography) Criterion() recommend.Criterion {
	return recommend.CriterionGeography
}

// Evaluate implements recommend.Scorer.
func (g *Geography) Evaluate(profile *models.UserProfile, tender *models.Tender, _ time.Time) recommend.Score {
	if tender.City == "" {
		return recommend.Score{Value: neutralScore}
	}

	if containsFold(profile.ExcludedCities, tender.City) {
		return recommend.Score{
			Value:   0,
			Penalty: fmt.Sprintf("Ville exclue: %s", tender.City),
		}
	}

	if len(profile.PreferredCities) == 0 {
		return recommend.Score{Value: neutralScore}
	}

	if containsFold(profile.PreferredCities, tender.City) {
		return recommend.Score{
			Value:  1.0,
			Reason: fmt.Sprintf("Ville préférée: %s", tender.City),
		}
	}

	radius := profile.Radius
	if radius == "" {
		radius = models.RadiusNational
	}
	credit, ok := radiusCredit[radius]
	if !ok {
		credit = neutralScore
	}

	score := recommend.Score{Value: credit}
	if credit == 0 {
		score.Penalty = fmt.Sprintf("Hors zone d'intervention: %s", tender.City)
	}
	return score
}

// compile-time interface compliance check
var _ recommend.Scorer = (*Geography)(nil)
