// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/tendermatch/config.yaml",
	"/etc/tendermatch/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all defaults applied. These are the
// first layer; config file and env vars override them.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8095,
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		API: APIConfig{
			DefaultPageSize:   20,
			MaxPageSize:       100,
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Storage: StorageConfig{
			Path:     "/data/tendermatch",
			InMemory: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Recommend: RecommendConfig{
			Weights: WeightsConfig{
				Sector:         0.25,
				Geography:      0.20,
				Financial:      0.20,
				Temporal:       0.15,
				Keyword:        0.15,
				Classification: 0.05,
			},
			Thresholds: ThresholdsConfig{
				VeryRelevant: 0.8,
				Relevant:     0.6,
			},
			Scorers: ScorersConfig{
				SectorPartialScore:    0.0,
				KeywordMode:           "recall",
				KeywordMinTokenLength: 3,
			},
			Learning: LearningConfig{
				Enabled:         false, // opt-in
				Rate:            0.01,
				Floor:           0.01,
				Interval:        5 * time.Minute,
				BatchSize:       500,
				EventsPerSecond: 0,
			},
			Limits: LimitsConfig{
				DefaultLimit:   20,
				MaxLimit:       100,
				MinScore:       0.6,
				MaxConcurrency: 0, // NumCPU
			},
		},
	}
}

// Default returns the built-in defaults without consulting files or the
// environment. Callers that need layered configuration use LoadWithKoanf.
func Default() *Config {
	return defaultConfig()
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in sensible defaults
//  2. Config file: optional YAML file (if one exists)
//  3. Environment variables: override any setting
//
// Precedence: ENV > file > defaults.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: optional config file
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	// HTTP_PORT -> server.port, RECOMMEND_LEARNING_RATE -> recommend.learning.rate
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Slice fields arrive from env as comma-separated strings.
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the first file found, or empty string if none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths are parsed as comma-separated
// slices when they arrive as strings.
var sliceConfigPaths = []string{
	"api.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for
// known slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (from YAML), skip.
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unmapped variables are dropped so that unrelated environment noise never
// pollutes the configuration.
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Server mappings
		"http_host":    "server.host",
		"http_port":    "server.port",
		"http_timeout": "server.timeout",
		"environment":  "server.environment",

		// API mappings
		"api_default_page_size": "api.default_page_size",
		"api_max_page_size":     "api.max_page_size",
		"rate_limit_requests":   "api.rate_limit_reqs",
		"rate_limit_window":     "api.rate_limit_window",
		"disable_rate_limit":    "api.rate_limit_disabled",
		"cors_origins":          "api.cors_origins",

		// Storage mappings
		"storage_path":      "storage.path",
		"storage_in_memory": "storage.in_memory",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",

		// Criterion weight mappings
		"recommend_weight_sector":         "recommend.weights.sector",
		"recommend_weight_geography":      "recommend.weights.geography",
		"recommend_weight_financial":      "recommend.weights.financial",
		"recommend_weight_temporal":       "recommend.weights.temporal",
		"recommend_weight_keyword":        "recommend.weights.keyword",
		"recommend_weight_classification": "recommend.weights.classification",

		// Threshold mappings
		"recommend_threshold_very_relevant": "recommend.thresholds.very_relevant",
		"recommend_threshold_relevant":      "recommend.thresholds.relevant",

		// Scorer mappings
		"recommend_sector_partial_score":     "recommend.scorers.sector_partial_score",
		"recommend_keyword_mode":             "recommend.scorers.keyword_mode",
		"recommend_keyword_min_token_length": "recommend.scorers.keyword_min_token_length",

		// Learning mappings
		"recommend_learning_enabled":           "recommend.learning.enabled",
		"recommend_learning_rate":              "recommend.learning.rate",
		"recommend_learning_floor":             "recommend.learning.floor",
		"recommend_learning_interval":          "recommend.learning.interval",
		"recommend_learning_batch_size":        "recommend.learning.batch_size",
		"recommend_learning_events_per_second": "recommend.learning.events_per_second",

		// Limit mappings
		"recommend_default_limit":   "recommend.limits.default_limit",
		"recommend_max_limit":       "recommend.limits.max_limit",
		"recommend_min_score":       "recommend.limits.min_score",
		"recommend_max_concurrency": "recommend.limits.max_concurrency",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	return ""
}
