// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/hzerouali/tendermatch/internal/models"
)

// ErrAdapterBusy is returned when a learning batch is requested while
// another one is still being applied.
var ErrAdapterBusy = errors.New("learning adapter busy")

// Adapter state names exposed via Status.
const (
	adapterStateIdle      = "idle"
	adapterStateAdjusting = "adjusting"
)

// TenderLookup resolves a tender ID during learning. The second return
// value reports whether the tender is known.
type TenderLookup func(tenderID string) (*models.Tender, bool)

// Adapter adjusts per-user weight vectors from interaction feedback.
//
// For each adjusting event, the event's tender is re-scored on every
// criterion and each weight is nudged by rate x (score - mean), pushed
// upward for positive events and downward for dismissals. The deviations
// around the mean sum to zero, so a batch drifts the vector rather than
// inflating it; a final flooring pass restores both the minimum-weight and
// the sum-to-one invariants exactly.
//
// The adapter has two states, idle and adjusting, and applies one batch at
// a time.
type Adapter struct {
	cfg     LearningConfig
	scorers func() []Scorer
	store   WeightStore
	logger  zerolog.Logger

	// mu is held for the duration of one batch; TryLock failures surface
	// as ErrAdapterBusy instead of queueing.
	mu        sync.Mutex
	adjusting atomic.Bool

	limiter *rate.Limiter

	applied atomic.Uint64
	skipped atomic.Uint64
}

// NewAdapter builds an adapter over the given scorer provider and weight
// store. The provider is called per event so late scorer registration is
// picked up.
func NewAdapter(cfg LearningConfig, scorers func() []Scorer, store WeightStore, logger zerolog.Logger) *Adapter {
	var limiter *rate.Limiter
	if cfg.EventsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.EventsPerSecond), 1)
	}
	return &Adapter{
		cfg:     cfg,
		scorers: scorers,
		store:   store,
		logger:  logger,
		limiter: limiter,
	}
}

// Enabled reports whether adaptation is active.
func (a *Adapter) Enabled() bool {
	return a.cfg.Enabled
}

// State returns "idle" or "adjusting".
func (a *Adapter) State() string {
	if a.adjusting.Load() {
		return adapterStateAdjusting
	}
	return adapterStateIdle
}

// Counters returns the lifetime applied/skipped event counts.
func (a *Adapter) Counters() (applied, skipped uint64) {
	return a.applied.Load(), a.skipped.Load()
}

// Apply adjusts the profile owner's weight vector from a batch of events
// and persists the result. It returns the vector in effect after the batch
// (the stored one, untouched, when learning is disabled or the batch is
// empty) and a per-batch report.
//
// Malformed events (unknown kind, unknown tender, foreign user) are
// dropped, logged and reported; they never fail the batch.
func (a *Adapter) Apply(ctx context.Context, profile *models.UserProfile, events []models.InteractionEvent, lookup TenderLookup) (WeightVector, *AdaptReport, error) {
	if profile == nil || profile.UserID == "" {
		return WeightVector{}, nil, fmt.Errorf("profile with user id is required")
	}

	current := a.store.Get(profile.UserID)
	report := &AdaptReport{}

	if !a.cfg.Enabled || len(events) == 0 {
		return current, report, nil
	}

	if !a.mu.TryLock() {
		return current, nil, ErrAdapterBusy
	}
	defer a.mu.Unlock()
	a.adjusting.Store(true)
	defer a.adjusting.Store(false)

	updated := current
	changed := false

	for i := range events {
		if err := ctx.Err(); err != nil {
			return current, report, fmt.Errorf("learning batch interrupted: %w", err)
		}
		if a.limiter != nil {
			if err := a.limiter.Wait(ctx); err != nil {
				return current, report, fmt.Errorf("learning batch interrupted: %w", err)
			}
		}

		event := &events[i]
		tender, skipReason := a.admit(profile, event, lookup)
		if skipReason != "" {
			a.skipped.Add(1)
			report.Skipped = append(report.Skipped, ItemError{
				TenderID: event.TenderID,
				Reason:   skipReason,
			})
			a.logger.Debug().
				Str("user_id", profile.UserID).
				Str("tender_id", event.TenderID).
				Str("kind", string(event.Kind)).
				Str("reason", skipReason).
				Msg("interaction event skipped")
			continue
		}

		a.applied.Add(1)
		report.Applied++

		if !event.Kind.Adjusts() {
			continue
		}

		at := event.Timestamp
		if at.IsZero() {
			at = time.Now()
		}
		updated = a.nudge(updated, profile, tender, event.Kind, at)
		changed = true
	}

	if !changed {
		return current, report, nil
	}

	updated = updated.Floored(a.cfg.Floor)
	if err := a.store.Set(profile.UserID, updated); err != nil {
		return current, report, fmt.Errorf("persisting adapted weights for %s: %w", profile.UserID, err)
	}

	a.logger.Info().
		Str("user_id", profile.UserID).
		Int("applied", report.Applied).
		Int("skipped", len(report.Skipped)).
		Msg("weights adapted from interaction batch")

	return updated, report, nil
}

// admit validates one event, returning its tender or a skip reason.
func (a *Adapter) admit(profile *models.UserProfile, event *models.InteractionEvent, lookup TenderLookup) (*models.Tender, string) {
	if !event.Kind.Valid() {
		return nil, fmt.Sprintf("unknown event kind %q", event.Kind)
	}
	if event.UserID != "" && event.UserID != profile.UserID {
		return nil, fmt.Sprintf("event belongs to user %q", event.UserID)
	}
	if event.TenderID == "" {
		return nil, "missing tender id"
	}
	if lookup == nil {
		return nil, "no tender lookup available"
	}
	tender, ok := lookup(event.TenderID)
	if !ok || tender == nil {
		return nil, "unknown tender"
	}
	return tender, ""
}

// nudge applies one event's adjustment to the vector.
func (a *Adapter) nudge(w WeightVector, profile *models.UserProfile, tender *models.Tender, kind models.EventKind, at time.Time) WeightVector {
	active := a.scorers()
	scores := make(CriterionScores, len(active))
	sum := 0.0
	for _, s := range active {
		v := s.Evaluate(profile, tender, at).Value
		scores[s.Criterion()] = v
		sum += v
	}
	if len(scores) == 0 {
		return w
	}
	mean := sum / float64(len(scores))

	direction := 1.0
	if kind == models.EventDismiss {
		direction = -1.0
	}

	for c, v := range scores {
		delta := direction * a.cfg.Rate * (v - mean)
		w.setWeight(c, w.Weight(c)+delta)
	}
	return w
}
