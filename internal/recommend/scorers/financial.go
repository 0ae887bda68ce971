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

// Financial scores the tender's budget and caution against the profile's
// declared capacity. Nil profile bounds are unconstrained; nil tender
// amounts are unpenalized. A violated bound costs a linear penalty
// proportional to the relative distance outside it, floored at zero. With
// several violations the most severe one decides.
type Financial struct{}

// NewFinancial builds the financial scorer.
func NewFinancial() *Financial {
	return &Financial{}
}

// Criterion implements recommend.Scorer.
func (f *Financial) Criterion() recommend.Criterion {
	return recommend.CriterionFinancial
}

// Evaluate implements recommend.Scorer.
func (f *Financial) Evaluate(profile *models.UserProfile, tender *models.Tender, _ time.Time) recommend.Score {
	result := recommend.Score{Value: 1.0}
	constrained := false

	apply := func(v float64, penalty string) {
		constrained = true
		if v < result.Value {
			result.Value = v
			result.Penalty = penalty
		}
	}

	if tender.Budget != nil {
		budget := *tender.Budget
		if profile.BudgetMin != nil && *profile.BudgetMin > 0 && budget < *profile.BudgetMin {
			v := clamp01(1 - (*profile.BudgetMin-budget) / *profile.BudgetMin)
			apply(v, fmt.Sprintf("Budget sous le minimum visé (%.0f)", *profile.BudgetMin))
		}
		if profile.BudgetMax != nil && *profile.BudgetMax > 0 && budget > *profile.BudgetMax {
			v := clamp01(1 - (budget-*profile.BudgetMax) / *profile.BudgetMax)
			apply(v, fmt.Sprintf("Budget au-delà de la capacité (%.0f)", *profile.BudgetMax))
		}
	}

	if tender.Caution != nil && profile.CautionMax != nil && *profile.CautionMax > 0 {
		caution := *tender.Caution
		if caution > *profile.CautionMax {
			v := clamp01(1 - (caution-*profile.CautionMax) / *profile.CautionMax)
			apply(v, fmt.Sprintf("Caution au-delà du plafond (%.0f)", *profile.CautionMax))
		}
	}

	if !constrained && (tender.Budget != nil || tender.Caution != nil) {
		result.Reason = "Conditions financières compatibles"
	}
	return result
}

// compile-time interface compliance check
var _ recommend.Scorer = (*Financial)(nil)
