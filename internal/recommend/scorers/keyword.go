// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

package scorers

import (
	"fmt"
	"strings"
	"time"

	"github.com/hzerouali/tendermatch/internal/models"
	"github.com/hzerouali/tendermatch/internal/recommend"
	"github.com/hzerouali/tendermatch/internal/recommend/keywords"
)

// Keyword scores the overlap between the profile's trade keywords and the
// tokens extracted from the tender's subject and analysis text.
//
// The default measure is recall (how much of what the company cares about
// appears in the notice); Jaccard is selectable via config. A profile
// without keywords scores exactly the neutral 0.5.
type Keyword struct {
	mode      string
	extractor *keywords.Extractor
}

// NewKeyword builds the keyword scorer from config.
func NewKeyword(cfg recommend.ScorerConfig) *Keyword {
	mode := cfg.KeywordMode
	if mode != "jaccard" {
		mode = "recall"
	}
	return &Keyword{
		mode:      mode,
		extractor: keywords.NewExtractor(cfg.KeywordMinTokenLength),
	}
}

// Criterion implements recommend.Scorer.
func (k *Keyword) Criterion() recommend.Criterion {
	return recommend.CriterionKeyword
}

// Evaluate implements recommend.Scorer.
func (k *Keyword) Evaluate(profile *models.UserProfile, tender *models.Tender, _ time.Time) recommend.Score {
	profileTokens := k.extractor.TokenSet(strings.Join(profile.Keywords, " "))
	if len(profileTokens) == 0 {
		return recommend.Score{Value: neutralScore}
	}

	tenderTokens := k.extractor.TokenSet(tender.Subject + " " + tender.AnalysisText)

	var value float64
	if k.mode == "jaccard" {
		value = keywords.Jaccard(profileTokens, tenderTokens)
	} else {
		value = keywords.Recall(profileTokens, tenderTokens)
	}
	value = clamp01(value)

	score := recommend.Score{Value: value}
	if value > 0 {
		score.Reason = fmt.Sprintf("Mots-clés métier retrouvés (%.0f%%)", value*100)
	}
	return score
}

// compile-time interface compliance check
var _ recommend.Scorer = (*Keyword)(nil)
