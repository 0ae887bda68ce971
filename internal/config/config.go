// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

// Package config loads and validates the TenderMatch service configuration.
//
// Configuration is layered with Koanf v2: built-in defaults, then an optional
// YAML file, then environment variables (highest priority). See LoadWithKoanf.
package config

import (
	"fmt"
	"time"

	"github.com/hzerouali/tendermatch/internal/recommend"
)

// Config is the root configuration for the TenderMatch service.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	API       APIConfig       `koanf:"api"`
	Storage   StorageConfig   `koanf:"storage"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the listen address. Default: 0.0.0.0
	Host string `koanf:"host"`

	// Port is the listen port. Default: 8095
	Port int `koanf:"port"`

	// Timeout applies to request read/write. Default: 30s
	Timeout time.Duration `koanf:"timeout"`

	// Environment is "development" or "production".
	Environment string `koanf:"environment"`
}

// APIConfig holds API surface settings.
type APIConfig struct {
	// DefaultPageSize is the page size applied when a request omits limit.
	// Default: 20
	DefaultPageSize int `koanf:"default_page_size"`

	// MaxPageSize caps the limit parameter. Default: 100
	MaxPageSize int `koanf:"max_page_size"`

	// RateLimitReqs is the number of requests allowed per window per IP.
	// Default: 100
	RateLimitReqs int `koanf:"rate_limit_reqs"`

	// RateLimitWindow is the rate limiting window. Default: 1m
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`

	// RateLimitDisabled turns off rate limiting entirely.
	RateLimitDisabled bool `koanf:"rate_limit_disabled"`

	// CORSOrigins lists allowed CORS origins. Default: ["*"]
	CORSOrigins []string `koanf:"cors_origins"`
}

// StorageConfig holds BadgerDB settings.
type StorageConfig struct {
	// Path is the on-disk Badger directory. Default: /data/tendermatch
	Path string `koanf:"path"`

	// InMemory runs Badger without disk persistence. Used in tests and
	// ephemeral deployments.
	InMemory bool `koanf:"in_memory"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level. Default: info
	Level string `koanf:"level"`

	// Format is json or console. Default: json
	Format string `koanf:"format"`

	// Caller includes caller file/line in logs. Default: false
	Caller bool `koanf:"caller"`
}

// RecommendConfig holds the recommendation engine settings. It is mapped to
// the engine's own config struct at wiring time (cmd/server).
type RecommendConfig struct {
	Weights    WeightsConfig    `koanf:"weights"`
	Thresholds ThresholdsConfig `koanf:"thresholds"`
	Scorers    ScorersConfig    `koanf:"scorers"`
	Learning   LearningConfig   `koanf:"learning"`
	Limits     LimitsConfig     `koanf:"limits"`
}

// WeightsConfig holds the default criterion weights. They must be
// non-negative; the engine renormalizes them to sum to 1.
type WeightsConfig struct {
	Sector         float64 `koanf:"sector"`
	Geography      float64 `koanf:"geography"`
	Financial      float64 `koanf:"financial"`
	Temporal       float64 `koanf:"temporal"`
	Keyword        float64 `koanf:"keyword"`
	Classification float64 `koanf:"classification"`
}

// ThresholdsConfig holds the relevance tier boundaries.
type ThresholdsConfig struct {
	// VeryRelevant is the inclusive lower bound of the top tier. Default: 0.8
	VeryRelevant float64 `koanf:"very_relevant"`

	// Relevant is the inclusive lower bound of the middle tier. Default: 0.6
	Relevant float64 `koanf:"relevant"`
}

// ScorersConfig holds per-criterion tuning.
type ScorersConfig struct {
	// SectorPartialScore is awarded when the tender sector is known but not
	// among the profile's sectors. Default: 0 (exact match only)
	SectorPartialScore float64 `koanf:"sector_partial_score"`

	// KeywordMode selects the overlap measure: "recall" or "jaccard".
	// Default: recall
	KeywordMode string `koanf:"keyword_mode"`

	// KeywordMinTokenLength drops shorter tokens during extraction.
	// Default: 3
	KeywordMinTokenLength int `koanf:"keyword_min_token_length"`
}

// LearningConfig holds the feedback learning settings.
type LearningConfig struct {
	// Enabled gates weight adaptation. Default: false
	Enabled bool `koanf:"enabled"`

	// Rate is the adjustment step size. Default: 0.01
	Rate float64 `koanf:"rate"`

	// Floor is the minimum weight any criterion can reach. Default: 0.01
	Floor float64 `koanf:"floor"`

	// Interval is how often the learning service drains the interaction
	// log. Default: 5m
	Interval time.Duration `koanf:"interval"`

	// BatchSize caps the events drained per pass. Default: 500
	BatchSize int `koanf:"batch_size"`

	// EventsPerSecond throttles batch application. 0 disables throttling.
	EventsPerSecond float64 `koanf:"events_per_second"`
}

// LimitsConfig bounds the recommendation pipeline.
type LimitsConfig struct {
	// DefaultLimit is the top-K returned when a request omits limit.
	// Default: 20
	DefaultLimit int `koanf:"default_limit"`

	// MaxLimit caps the requested top-K. Default: 100
	MaxLimit int `koanf:"max_limit"`

	// MinScore filters recommendations below this total. Default: 0.6
	MinScore float64 `koanf:"min_score"`

	// MaxConcurrency bounds the scoring worker pool. 0 means NumCPU.
	MaxConcurrency int `koanf:"max_concurrency"`
}

// EngineConfig maps the recommend section onto the engine's own config
// struct. The two are kept separate so the engine package stays free of
// koanf concerns.
func (r *RecommendConfig) EngineConfig() *recommend.Config {
	return &recommend.Config{
		Weights: recommend.WeightVector{
			Sector:         r.Weights.Sector,
			Geography:      r.Weights.Geography,
			Financial:      r.Weights.Financial,
			Temporal:       r.Weights.Temporal,
			Keyword:        r.Weights.Keyword,
			Classification: r.Weights.Classification,
		},
		Thresholds: recommend.ThresholdConfig{
			VeryRelevant: r.Thresholds.VeryRelevant,
			Relevant:     r.Thresholds.Relevant,
		},
		Scorers: recommend.ScorerConfig{
			SectorPartialScore:    r.Scorers.SectorPartialScore,
			KeywordMode:           r.Scorers.KeywordMode,
			KeywordMinTokenLength: r.Scorers.KeywordMinTokenLength,
		},
		Learning: recommend.LearningConfig{
			Enabled:         r.Learning.Enabled,
			Rate:            r.Learning.Rate,
			Floor:           r.Learning.Floor,
			EventsPerSecond: r.Learning.EventsPerSecond,
		},
		Limits: recommend.LimitConfig{
			DefaultLimit:   r.Limits.DefaultLimit,
			MaxLimit:       r.Limits.MaxLimit,
			MinScore:       r.Limits.MinScore,
			MaxConcurrency: r.Limits.MaxConcurrency,
		},
	}
}

// Validate checks the configuration for coherence. It returns the first
// problem found.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("api.default_page_size must be at least 1, got %d", c.API.DefaultPageSize)
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("api.max_page_size (%d) must be >= api.default_page_size (%d)",
			c.API.MaxPageSize, c.API.DefaultPageSize)
	}
	if !c.Storage.InMemory && c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required when storage.in_memory is false")
	}

	return c.Recommend.Validate()
}

// Validate checks the engine section.
func (r *RecommendConfig) Validate() error {
	weights := []struct {
		name  string
		value float64
	}{
		{"sector", r.Weights.Sector},
		{"geography", r.Weights.Geography},
		{"financial", r.Weights.Financial},
		{"temporal", r.Weights.Temporal},
		{"keyword", r.Weights.Keyword},
		{"classification", r.Weights.Classification},
	}
	sum := 0.0
	for _, w := range weights {
		if w.value < 0 {
			return fmt.Errorf("recommend.weights.%s must be non-negative, got %f", w.name, w.value)
		}
		sum += w.value
	}
	if sum == 0 {
		return fmt.Errorf("recommend.weights must not all be zero")
	}

	if r.Thresholds.VeryRelevant <= r.Thresholds.Relevant {
		return fmt.Errorf("recommend.thresholds.very_relevant (%f) must be > relevant (%f)",
			r.Thresholds.VeryRelevant, r.Thresholds.Relevant)
	}
	if r.Thresholds.Relevant < 0 || r.Thresholds.VeryRelevant > 1 {
		return fmt.Errorf("recommend.thresholds must stay within [0,1]")
	}

	if r.Scorers.KeywordMode != "recall" && r.Scorers.KeywordMode != "jaccard" {
		return fmt.Errorf("recommend.scorers.keyword_mode must be recall or jaccard, got %q",
			r.Scorers.KeywordMode)
	}
	if r.Scorers.SectorPartialScore < 0 || r.Scorers.SectorPartialScore > 1 {
		return fmt.Errorf("recommend.scorers.sector_partial_score must be within [0,1], got %f",
			r.Scorers.SectorPartialScore)
	}

	if r.Learning.Rate <= 0 || r.Learning.Rate >= 1 {
		return fmt.Errorf("recommend.learning.rate must be in (0,1), got %f", r.Learning.Rate)
	}
	if r.Learning.Floor <= 0 || r.Learning.Floor >= 1.0/6.0 {
		return fmt.Errorf("recommend.learning.floor must be in (0, 1/6), got %f", r.Learning.Floor)
	}
	if r.Learning.BatchSize < 1 {
		return fmt.Errorf("recommend.learning.batch_size must be at least 1, got %d", r.Learning.BatchSize)
	}

	if r.Limits.DefaultLimit < 1 || r.Limits.DefaultLimit > r.Limits.MaxLimit {
		return fmt.Errorf("recommend.limits.default_limit (%d) must be in [1, max_limit=%d]",
			r.Limits.DefaultLimit, r.Limits.MaxLimit)
	}
	if r.Limits.MinScore < 0 || r.Limits.MinScore > 1 {
		return fmt.Errorf("recommend.limits.min_score must be within [0,1], got %f", r.Limits.MinScore)
	}

	return nil
}
