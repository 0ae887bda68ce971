// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

// Package scorers implements the six criterion scorers registered into the
// recommendation engine. Every scorer is pure: it reads the profile and the
// tender, returns a value in [0,1] with an optional explanation, and never
// fails on missing optional fields.
//
// Missing or undeclared inputs score the neutral 0.5: an incomplete profile
// neither boosts nor buries a tender on the criteria it left blank.
package scorers

import (
	"github.com/hzerouali/tendermatch/internal/recommend"
	"github.com/hzerouali/tendermatch/internal/recommend/keywords"
)

// neutralScore is returned when either side lacks the data a criterion
// needs.
const neutralScore = 0.5

// Default builds the full scorer set from the engine config, in canonical
// criterion order.
func Default(cfg *recommend.Config) []recommend.Scorer {
	if cfg == nil {
		cfg = recommend.DefaultConfig()
	}
	return []recommend.Scorer{
		NewSector(cfg.Scorers),
		NewGeography(),
		NewFinancial(),
		NewTemporal(),
		NewKeyword(cfg.Scorers),
		NewClassification(),
	}
}

// clamp01 bounds v to [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// containsFold reports fold-insensitive membership of s in list.
func containsFold(list []string, s string) bool {
	folded := keywords.Fold(s)
	for _, item := range list {
		if keywords.Fold(item) == folded {
			return true
		}
	}
	return false
}
