// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

// Package main is the entry point for the TenderMatch server.
//
// TenderMatch scores Moroccan public procurement opportunities (appels
// d'offres) against company profiles across six criteria and serves ranked
// recommendations over a REST API. Interaction feedback is recorded in an
// event log and periodically drained to adapt each user's criterion
// weights.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Koanf v2 layered config (defaults, YAML file, env)
//  2. Storage: BadgerDB stores for profiles, tenders, interactions, weights
//  3. Engine: criterion scorers, weighted aggregation, learning adapter
//  4. HTTP API: Chi router with the REST endpoints and /metrics
//  5. Supervision: Suture tree running the HTTP server and learning loop
//
// # Configuration
//
// Settings are loaded via Koanf v2, highest priority first:
//   - Environment variables (HTTP_PORT, STORAGE_PATH, RECOMMEND_LEARNING_ENABLED, ...)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: the supervisor
// tree stops its services, in-flight requests get 10 seconds to drain, and
// the Badger stores are closed last.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hzerouali/tendermatch/internal/api"
	"github.com/hzerouali/tendermatch/internal/config"
	"github.com/hzerouali/tendermatch/internal/logging"
	"github.com/hzerouali/tendermatch/internal/recommend"
	"github.com/hzerouali/tendermatch/internal/recommend/scorers"
	"github.com/hzerouali/tendermatch/internal/store"
	"github.com/hzerouali/tendermatch/internal/supervisor"
	"github.com/hzerouali/tendermatch/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings.
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("storage_path", cfg.Storage.Path).
		Bool("learning_enabled", cfg.Recommend.Learning.Enabled).
		Msg("Starting TenderMatch")

	engineCfg := cfg.Recommend.EngineConfig()

	st, err := store.Open(store.Options{
		Path:     cfg.Storage.Path,
		InMemory: cfg.Storage.InMemory,
	}, engineCfg.Weights, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing storage")
		}
	}()
	logging.Info().Msg("Storage initialized")

	engine, err := recommend.NewEngine(engineCfg, st.Weights, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}
	for _, scorer := range scorers.Default(engineCfg) {
		if err := engine.RegisterScorer(scorer); err != nil {
			logging.Fatal().Err(err).Str("criterion", string(scorer.Criterion())).
				Msg("Failed to register scorer")
		}
	}
	logging.Info().Int("scorers", len(recommend.AllCriteria())).Msg("Engine initialized")

	router := api.NewRouter(cfg, engine, st)
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	// The supervisor tree restarts crashed services; sutureslog needs an
	// slog.Logger, so the zerolog bridge is used here.
	tree, err := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, supervisor.DefaultTreeConfig().ShutdownTimeout))
	if cfg.Recommend.Learning.Enabled {
		tree.AddLearningService(services.NewLearningService(engine, st, services.LearningServiceConfig{
			Interval:  cfg.Recommend.Learning.Interval,
			BatchSize: cfg.Recommend.Learning.BatchSize,
		}, logging.Logger()))
	} else {
		logging.Info().Msg("Learning disabled; interaction events are recorded but not applied")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("Server listening")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree exited with error")
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing storage")
		}
		os.Exit(1)
	}

	logging.Info().Msg("Shutdown complete")
}
