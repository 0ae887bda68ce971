// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got: %v", err)
	}

	sum := cfg.Recommend.Weights.Sector +
		cfg.Recommend.Weights.Geography +
		cfg.Recommend.Weights.Financial +
		cfg.Recommend.Weights.Temporal +
		cfg.Recommend.Weights.Keyword +
		cfg.Recommend.Weights.Classification
	if sum != 1.0 {
		t.Errorf("default weights sum = %f, want 1.0", sum)
	}

	if cfg.Recommend.Learning.Enabled {
		t.Error("learning should be disabled by default")
	}
	if cfg.Recommend.Thresholds.VeryRelevant != 0.8 || cfg.Recommend.Thresholds.Relevant != 0.6 {
		t.Errorf("default thresholds = %f/%f, want 0.8/0.6",
			cfg.Recommend.Thresholds.VeryRelevant, cfg.Recommend.Thresholds.Relevant)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr bool
	}{
		{
			name:    "defaults pass",
			mutate:  func(cfg *Config) {},
			wantErr: false,
		},
		{
			name:    "invalid port",
			mutate:  func(cfg *Config) { cfg.Server.Port = 0 },
			wantErr: true,
		},
		{
			name:    "negative weight",
			mutate:  func(cfg *Config) { cfg.Recommend.Weights.Sector = -0.1 },
			wantErr: true,
		},
		{
			name: "all-zero weights",
			mutate: func(cfg *Config) {
				cfg.Recommend.Weights = WeightsConfig{}
			},
			wantErr: true,
		},
		{
			name: "inverted thresholds",
			mutate: func(cfg *Config) {
				cfg.Recommend.Thresholds.VeryRelevant = 0.5
			},
			wantErr: true,
		},
		{
			name:    "unknown keyword mode",
			mutate:  func(cfg *Config) { cfg.Recommend.Scorers.KeywordMode = "cosine" },
			wantErr: true,
		},
		{
			name:    "learning rate out of range",
			mutate:  func(cfg *Config) { cfg.Recommend.Learning.Rate = 1.5 },
			wantErr: true,
		},
		{
			name:    "floor too large",
			mutate:  func(cfg *Config) { cfg.Recommend.Learning.Floor = 0.2 },
			wantErr: true,
		},
		{
			name: "default limit above max",
			mutate: func(cfg *Config) {
				cfg.Recommend.Limits.DefaultLimit = 200
			},
			wantErr: true,
		},
		{
			name: "missing storage path",
			mutate: func(cfg *Config) {
				cfg.Storage.Path = ""
				cfg.Storage.InMemory = false
			},
			wantErr: true,
		},
		{
			name: "in-memory storage needs no path",
			mutate: func(cfg *Config) {
				cfg.Storage.Path = ""
				cfg.Storage.InMemory = true
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadWithKoanf(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		env    map[string]string
		verify func(t *testing.T, cfg *Config)
	}{
		{
			name: "yaml overrides defaults",
			yaml: "server:\n  port: 9090\nrecommend:\n  learning:\n    enabled: true\n",
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Server.Port != 9090 {
					t.Errorf("Port = %d, want 9090", cfg.Server.Port)
				}
				if !cfg.Recommend.Learning.Enabled {
					t.Error("learning.enabled should be true from yaml")
				}
				// Untouched values keep their defaults.
				if cfg.Recommend.Limits.DefaultLimit != 20 {
					t.Errorf("DefaultLimit = %d, want default 20", cfg.Recommend.Limits.DefaultLimit)
				}
			},
		},
		{
			name: "env overrides yaml",
			yaml: "server:\n  port: 9090\n",
			env: map[string]string{
				"HTTP_PORT":               "7070",
				"RECOMMEND_WEIGHT_SECTOR": "0.5",
				"CORS_ORIGINS":            "https://a.example, https://b.example",
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Server.Port != 7070 {
					t.Errorf("Port = %d, want env override 7070", cfg.Server.Port)
				}
				if cfg.Recommend.Weights.Sector != 0.5 {
					t.Errorf("Weights.Sector = %f, want 0.5", cfg.Recommend.Weights.Sector)
				}
				if len(cfg.API.CORSOrigins) != 2 || cfg.API.CORSOrigins[1] != "https://b.example" {
					t.Errorf("CORSOrigins = %v, want two trimmed origins", cfg.API.CORSOrigins)
				}
			},
		},
		{
			name: "unmapped env vars are ignored",
			yaml: "",
			env: map[string]string{
				"RANDOM_UNRELATED_VAR": "boom",
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Server.Port != 8095 {
					t.Errorf("Port = %d, want default 8095", cfg.Server.Port)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.yaml != "" {
				path := filepath.Join(dir, "config.yaml")
				if err := os.WriteFile(path, []byte(tt.yaml), 0o600); err != nil {
					t.Fatalf("writing config file: %v", err)
				}
				t.Setenv(ConfigPathEnvVar, path)
			} else {
				t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "missing.yaml"))
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadWithKoanf()
			if err != nil {
				t.Fatalf("LoadWithKoanf() error = %v", err)
			}
			tt.verify(t, cfg)
		})
	}
}

func TestLoadWithKoanf_InvalidConfigRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: -1\n"), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	if _, err := LoadWithKoanf(); err == nil {
		t.Fatal("expected validation error for negative port")
	}
}

func TestDefaultTimeouts(t *testing.T) {
	cfg := defaultConfig()
	if cfg.Server.Timeout != 30*time.Second {
		t.Errorf("Timeout = %s, want 30s", cfg.Server.Timeout)
	}
	if cfg.Recommend.Learning.Interval != 5*time.Minute {
		t.Errorf("learning.Interval = %s, want 5m", cfg.Recommend.Learning.Interval)
	}
}
