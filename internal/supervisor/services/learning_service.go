// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/hzerouali/tendermatch/internal/models"
	"github.com/hzerouali/tendermatch/internal/recommend"
	"github.com/hzerouali/tendermatch/internal/store"
)

// learningConsumer is the interaction log consumer name under which the
// service tracks its drain offset.
const learningConsumer = "learning"

// WeightAdapter is the slice of the recommendation engine the learning
// service needs. Satisfied by *recommend.Engine.
type WeightAdapter interface {
	Adapt(ctx context.Context, profile *models.UserProfile, events []models.InteractionEvent,
		lookup recommend.TenderLookup) (recommend.WeightVector, *recommend.AdaptReport, error)
}

// LearningServiceConfig holds configuration for the learning service.
type LearningServiceConfig struct {
	// Interval is how often the interaction log is drained.
	// Default: 5m
	Interval time.Duration

	// BatchSize caps the events drained per pass. Default: 500
	BatchSize int
}

// LearningService periodically drains the interaction log and feeds each
// user's new events to the weight adapter. The drain offset is persisted
// per consumer, so a restart resumes where the previous run stopped and
// events are never applied twice.
type LearningService struct {
	adapter WeightAdapter
	store   *store.Store
	config  LearningServiceConfig
	logger  zerolog.Logger
	name    string
}

// NewLearningService creates the learning loop service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewLearningService(adapter WeightAdapter, st *store.Store, cfg LearningServiceConfig, logger zerolog.Logger) *LearningService {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Minute
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	return &LearningService{
		adapter: adapter,
		store:   st,
		config:  cfg,
		logger:  logger.With().Str("service", "learning").Logger(),
		name:    "learning-service",
	}
}

// Serve implements the suture.Service interface. It drains once on
// startup so a backlog accumulated while the service was down is worked
// off immediately, then settles into the configured interval.
func (s *LearningService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.config.Interval).
		Int("batch_size", s.config.BatchSize).
		Msg("learning service starting")

	if err := s.drain(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("startup drain failed (will retry on schedule)")
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("learning service shutting down")
			return ctx.Err()

		case <-ticker.C:
			if err := s.drain(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("scheduled drain failed")
			}
		}
	}
}

// drain reads one batch of new interaction events, applies them per user,
// and advances the consumer offset. The offset only moves after the whole
// batch was processed, so a crash mid-batch replays it; event application
// is idempotent enough for that (a replayed nudge is bounded by the floor
// and renormalization).
func (s *LearningService) drain(ctx context.Context) error {
	offset, err := s.store.Interactions.Offset(ctx, learningConsumer)
	if err != nil {
		return err
	}

	events, next, err := s.store.Interactions.ListSince(ctx, offset, s.config.BatchSize)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	byUser := make(map[string][]models.InteractionEvent)
	var order []string
	for _, logged := range events {
		if _, seen := byUser[logged.UserID]; !seen {
			order = append(order, logged.UserID)
		}
		byUser[logged.UserID] = append(byUser[logged.UserID], logged.InteractionEvent)
	}

	lookup := func(tenderID string) (*models.Tender, bool) {
		tender, err := s.store.Tenders.Get(ctx, tenderID)
		if err != nil {
			return nil, false
		}
		return tender, true
	}

	applied := 0
	for _, userID := range order {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		profile, err := s.store.Profiles.Get(ctx, userID)
		if errors.Is(err, store.ErrProfileNotFound) {
			s.logger.Debug().Str("user_id", userID).Msg("skipping events for unknown profile")
			continue
		}
		if err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to load profile")
			continue
		}

		_, report, err := s.adapter.Adapt(ctx, profile, byUser[userID], lookup)
		if err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("weight adaptation failed")
			continue
		}
		applied += report.Applied
	}

	if err := s.store.Interactions.SetOffset(ctx, learningConsumer, next); err != nil {
		return err
	}

	s.logger.Info().
		Int("events", len(events)).
		Int("applied", applied).
		Int("users", len(order)).
		Uint64("next_offset", next).
		Msg("interaction log drained")
	return nil
}

// String returns the service name for logging.
func (s *LearningService) String() string {
	return s.name
}
