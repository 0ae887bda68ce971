// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

package recommend

import (
	"fmt"
	"runtime"
)

// Config holds the engine configuration. Use DefaultConfig as a starting
// point and override what the deployment needs.
type Config struct {
	// Weights is the default criterion weight vector, applied to every
	// user without a personalized vector.
	Weights WeightVector `json:"weights"`

	// Thresholds are the relevance tier boundaries.
	Thresholds ThresholdConfig `json:"thresholds"`

	// Scorers tunes individual criteria.
	Scorers ScorerConfig `json:"scorers"`

	// Learning configures feedback-driven weight adaptation.
	Learning LearningConfig `json:"learning"`

	// Limits bounds the recommendation pipeline.
	Limits LimitConfig `json:"limits"`
}

// ThresholdConfig holds the tier boundaries, both inclusive lower bounds.
type ThresholdConfig struct {
	// VeryRelevant is the lower bound of the top tier.
	// Default: 0.8
	VeryRelevant float64 `json:"very_relevant"`

	// Relevant is the lower bound of the middle tier.
	// Default: 0.6
	Relevant float64 `json:"relevant"`
}

// ScorerConfig tunes individual criterion scorers.
type ScorerConfig struct {
	// SectorPartialScore is awarded when the tender declares a sector that
	// is not among the profile's sectors.
	// Default: 0 (exact match only)
	SectorPartialScore float64 `json:"sector_partial_score"`

	// KeywordMode selects the overlap measure: "recall" or "jaccard".
	// Default: recall
	KeywordMode string `json:"keyword_mode"`

	// KeywordMinTokenLength drops shorter tokens during extraction.
	// Default: 3
	KeywordMinTokenLength int `json:"keyword_min_token_length"`
}

// LearningConfig configures the feedback adapter.
type LearningConfig struct {
	// Enabled gates all weight adaptation. When false, Adapt passes
	// vectors through unchanged.
	// Default: false
	Enabled bool `json:"enabled"`

	// Rate is the adjustment step size.
	// Default: 0.01
	Rate float64 `json:"rate"`

	// Floor is the minimum weight any criterion can reach after
	// adaptation.
	// Default: 0.01
	Floor float64 `json:"floor"`

	// EventsPerSecond throttles batch application. 0 disables throttling.
	EventsPerSecond float64 `json:"events_per_second"`
}

// LimitConfig bounds the recommendation pipeline.
type LimitConfig struct {
	// DefaultLimit is the top-K returned when a request omits limit.
	// Default: 20
	DefaultLimit int `json:"default_limit"`

	// MaxLimit caps the requested top-K.
	// Default: 100
	MaxLimit int `json:"max_limit"`

	// MinScore filters recommendations whose total falls below it.
	// Default: 0.6
	MinScore float64 `json:"min_score"`

	// MaxConcurrency bounds the scoring worker pool. 0 means NumCPU.
	MaxConcurrency int `json:"max_concurrency"`
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights: DefaultWeights(),
		Thresholds: ThresholdConfig{
			VeryRelevant: 0.8,
			Relevant:     0.6,
		},
		Scorers: ScorerConfig{
			SectorPartialScore:    0.0,
			KeywordMode:           "recall",
			KeywordMinTokenLength: 3,
		},
		Learning: LearningConfig{
			Enabled:         false,
			Rate:            0.01,
			Floor:           0.01,
			EventsPerSecond: 0,
		},
		Limits: LimitConfig{
			DefaultLimit:   20,
			MaxLimit:       100,
			MinScore:       0.6,
			MaxConcurrency: 0,
		},
	}
}

// Validate checks the configuration for coherence.
func (c *Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("weights: %w", err)
	}
	if c.Thresholds.Relevant < 0 || c.Thresholds.VeryRelevant > 1 {
		return fmt.Errorf("thresholds must stay within [0,1], got %f/%f",
			c.Thresholds.Relevant, c.Thresholds.VeryRelevant)
	}
	if c.Thresholds.VeryRelevant <= c.Thresholds.Relevant {
		return fmt.Errorf("very_relevant threshold (%f) must be above relevant (%f)",
			c.Thresholds.VeryRelevant, c.Thresholds.Relevant)
	}
	if c.Scorers.KeywordMode != "recall" && c.Scorers.KeywordMode != "jaccard" {
		return fmt.Errorf("keyword_mode must be recall or jaccard, got %q", c.Scorers.KeywordMode)
	}
	if c.Scorers.SectorPartialScore < 0 || c.Scorers.SectorPartialScore > 1 {
		return fmt.Errorf("sector_partial_score must be within [0,1], got %f", c.Scorers.SectorPartialScore)
	}
	if c.Learning.Rate <= 0 || c.Learning.Rate >= 1 {
		return fmt.Errorf("learning rate must be in (0,1), got %f", c.Learning.Rate)
	}
	if c.Learning.Floor <= 0 || c.Learning.Floor >= 1.0/float64(len(AllCriteria())) {
		return fmt.Errorf("learning floor must be in (0, 1/%d), got %f",
			len(AllCriteria()), c.Learning.Floor)
	}
	if c.Limits.DefaultLimit < 1 || c.Limits.DefaultLimit > c.Limits.MaxLimit {
		return fmt.Errorf("default_limit (%d) must be in [1, max_limit=%d]",
			c.Limits.DefaultLimit, c.Limits.MaxLimit)
	}
	if c.Limits.MinScore < 0 || c.Limits.MinScore > 1 {
		return fmt.Errorf("min_score must be within [0,1], got %f", c.Limits.MinScore)
	}
	return nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// concurrency resolves the effective worker pool size.
func (c *Config) concurrency() int {
	if c.Limits.MaxConcurrency > 0 {
		return c.Limits.MaxConcurrency
	}
	return runtime.NumCPU()
}
