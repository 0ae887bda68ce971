// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

package recommend

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/hzerouali/tendermatch/internal/metrics"
	"github.com/hzerouali/tendermatch/internal/models"
	"github.com/hzerouali/tendermatch/internal/recommend/keywords"
)

// Engine scores tenders against user profiles and ranks them.
//
// The engine holds a set of criterion scorers, a per-user weight store and
// a learning adapter. Scoring one pair is pure; Recommend fans candidates
// out over a bounded worker pool and isolates per-item failures.
type Engine struct {
	config  *Config
	logger  zerolog.Logger
	weights WeightStore
	adapter *Adapter

	scorerMu sync.RWMutex
	scorers  []Scorer

	scored         atomic.Uint64
	recommendCalls atomic.Uint64
}

// NewEngine creates an engine. A nil config selects DefaultConfig; a nil
// store selects an in-memory weight store seeded with the config weights.
// Scorers are registered separately with RegisterScorer.
func NewEngine(config *Config, store WeightStore, logger zerolog.Logger) (*Engine, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	if store == nil {
		store = NewMemoryWeightStore(config.Weights)
	}

	e := &Engine{
		config:  config,
		logger:  logger.With().Str("component", "recommend").Logger(),
		weights: store,
	}
	e.adapter = NewAdapter(config.Learning, e.getScorers, store, e.logger)
	return e, nil
}

// RegisterScorer adds a criterion scorer. At most one scorer per criterion.
func (e *Engine) RegisterScorer(s Scorer) error {
	if s == nil {
		return fmt.Errorf("scorer must not be nil")
	}
	c := s.Criterion()
	if !c.Valid() {
		return fmt.Errorf("unknown criterion %q", c)
	}

	e.scorerMu.Lock()
	defer e.scorerMu.Unlock()
	for _, existing := range e.scorers {
		if existing.Criterion() == c {
			return fmt.Errorf("criterion %q already registered", c)
		}
	}
	e.scorers = append(e.scorers, s)
	e.logger.Debug().Str("criterion", string(c)).Msg("scorer registered")
	return nil
}

// Weights exposes the engine's weight store.
func (e *Engine) Weights() WeightStore {
	return e.weights
}

// getScorers returns a copy of the registered scorers.
func (e *Engine) getScorers() []Scorer {
	e.scorerMu.RLock()
	defer e.scorerMu.RUnlock()
	out := make([]Scorer, len(e.scorers))
	copy(out, e.scorers)
	return out
}

// Score evaluates a single profile/tender pair with the profile owner's
// weight vector. A zero now means time.Now().
func (e *Engine) Score(profile *models.UserProfile, tender *models.Tender, now time.Time) (*ScoreBreakdown, error) {
	if profile == nil {
		return nil, fmt.Errorf("profile is required")
	}
	if tender == nil || tender.ID == "" {
		return nil, fmt.Errorf("tender with id is required")
	}
	scorers := e.getScorers()
	if len(scorers) == 0 {
		return nil, fmt.Errorf("no scorers registered")
	}
	if now.IsZero() {
		now = time.Now()
	}

	weights := e.effectiveWeights(profile.UserID)
	breakdown := e.scoreOne(scorers, profile, tender, weights, now)
	return breakdown, nil
}

// effectiveWeights fetches the user's vector and repairs it when needed:
// an all-zero vector is reset to the configured defaults, a drifted sum is
// renormalized.
func (e *Engine) effectiveWeights(userID string) WeightVector {
	w := e.weights.Get(userID)
	if w.IsZero() {
		e.logger.Warn().
			Str("user_id", userID).
			Msg("all-zero weight vector replaced with defaults")
		w = e.config.Weights.Normalized()
		if err := e.weights.Set(userID, w); err != nil {
			e.logger.Error().Err(err).
				Str("user_id", userID).
				Msg("failed to persist repaired weight vector")
		}
		return w
	}
	if !w.IsNormalized() {
		w = w.Normalized()
	}
	return w
}

// scoreOne computes the weighted breakdown for one pair.
func (e *Engine) scoreOne(scorers []Scorer, profile *models.UserProfile, tender *models.Tender, weights WeightVector, now time.Time) *ScoreBreakdown {
	start := time.Now()

	breakdown := &ScoreBreakdown{
		TenderID: tender.ID,
		Scores:   make(CriterionScores, len(scorers)),
	}

	total := 0.0
	for _, s := range scorers {
		score := s.Evaluate(profile, tender, now)
		value := clampUnit(score.Value)
		breakdown.Scores[s.Criterion()] = value
		total += weights.Weight(s.Criterion()) * value

		if score.Reason != "" {
			breakdown.Reasons = append(breakdown.Reasons, score.Reason)
		}
		if score.Penalty != "" {
			breakdown.Penalties = append(breakdown.Penalties, score.Penalty)
		}
	}
	breakdown.Total = clampUnit(total)

	if penalty, excluded := e.exclusionPenalty(profile, tender); excluded {
		breakdown.Excluded = true
		breakdown.Total = 0
		breakdown.Penalties = append(breakdown.Penalties, penalty)
	}

	breakdown.Tier = e.tierFor(breakdown.Total)

	e.scored.Add(1)
	metrics.RecordScoring(string(breakdown.Tier), breakdown.Excluded, time.Since(start))
	return breakdown
}

// exclusionPenalty checks the profile's hard exclusion lists. A hit forces
// the total to zero regardless of the per-criterion scores.
func (e *Engine) exclusionPenalty(profile *models.UserProfile, tender *models.Tender) (string, bool) {
	if tender.Sector != "" && foldedMember(profile.ExcludedSectors, tender.Sector) {
		return fmt.Sprintf("Secteur exclu: %s", tender.Sector), true
	}
	if tender.City != "" && foldedMember(profile.ExcludedCities, tender.City) {
		return fmt.Sprintf("Ville exclue: %s", tender.City), true
	}
	return "", false
}

// tierFor maps a total to its relevance tier. Both boundaries are
// inclusive lower bounds.
func (e *Engine) tierFor(total float64) Tier {
	switch {
	case total >= e.config.Thresholds.VeryRelevant:
		return TierVeryRelevant
	case total >= e.config.Thresholds.Relevant:
		return TierRelevant
	default:
		return TierLow
	}
}

// scoredCandidate pairs a candidate index with its outcome so results can
// be collected without channel ordering games.
type scoredCandidate struct {
	breakdown *ScoreBreakdown
	skip      *ItemError
}

// Recommend scores every candidate against the profile, ranks the
// survivors and returns the top slice.
//
// Per-item failures (a tender without an ID) are isolated into
// Result.Skipped; they never fail the call. Candidates below the minimum
// score and exclusion-list hits are filtered out silently.
func (e *Engine) Recommend(ctx context.Context, profile *models.UserProfile, tenders []models.Tender, opts Options) (*Result, error) {
	e.recommendCalls.Add(1)
	start := time.Now()

	if profile == nil {
		return nil, fmt.Errorf("profile is required")
	}
	scorers := e.getScorers()
	if len(scorers) == 0 {
		return nil, fmt.Errorf("no scorers registered")
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	result := &Result{
		Items:           []Recommendation{},
		TotalCandidates: len(tenders),
		EvaluatedAt:     now,
	}
	if len(tenders) == 0 {
		return result, nil
	}

	weights := e.effectiveWeights(profile.UserID)
	outcomes, err := e.scoreCandidates(ctx, scorers, profile, tenders, weights, now)
	if err != nil {
		return nil, err
	}

	minScore := e.config.Limits.MinScore
	if opts.MinScore != nil {
		minScore = *opts.MinScore
	}

	ranked := make([]Recommendation, 0, len(tenders))
	for i, outcome := range outcomes {
		if outcome.skip != nil {
			result.Skipped = append(result.Skipped, *outcome.skip)
			continue
		}
		if outcome.breakdown.Excluded || outcome.breakdown.Total < minScore {
			continue
		}
		ranked = append(ranked, Recommendation{
			Tender:    tenders[i],
			Breakdown: *outcome.breakdown,
		})
	}

	sortRecommendations(ranked)
	result.Items = truncate(ranked, e.resolveLimit(opts.Limit))

	metrics.RecordRecommendation(len(tenders), time.Since(start))
	e.logger.Debug().
		Str("user_id", profile.UserID).
		Int("candidates", len(tenders)).
		Int("returned", len(result.Items)).
		Int("skipped", len(result.Skipped)).
		Msg("recommendation run complete")
	return result, nil
}

// scoreCandidates evaluates every candidate on a bounded worker pool.
func (e *Engine) scoreCandidates(ctx context.Context, scorers []Scorer, profile *models.UserProfile, tenders []models.Tender, weights WeightVector, now time.Time) ([]scoredCandidate, error) {
	outcomes := make([]scoredCandidate, len(tenders))

	workers := e.config.concurrency()
	if workers > len(tenders) {
		workers = len(tenders)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				outcomes[idx] = e.scoreCandidate(scorers, profile, &tenders[idx], weights, now)
			}
		}()
	}

feed:
	for i := range tenders {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("recommendation interrupted: %w", err)
	}
	return outcomes, nil
}

// scoreCandidate scores one candidate, converting validation problems into
// a skip entry instead of an error.
func (e *Engine) scoreCandidate(scorers []Scorer, profile *models.UserProfile, tender *models.Tender, weights WeightVector, now time.Time) scoredCandidate {
	if tender.ID == "" {
		return scoredCandidate{skip: &ItemError{Reason: "missing tender id"}}
	}
	return scoredCandidate{breakdown: e.scoreOne(scorers, profile, tender, weights, now)}
}

// Adapt applies a feedback batch to the profile owner's weight vector.
func (e *Engine) Adapt(ctx context.Context, profile *models.UserProfile, events []models.InteractionEvent, lookup TenderLookup) (WeightVector, *AdaptReport, error) {
	start := time.Now()
	weights, report, err := e.adapter.Apply(ctx, profile, events, lookup)
	if err != nil {
		return weights, report, err
	}
	metrics.RecordLearningBatch(report.Applied, len(report.Skipped), time.Since(start))
	return weights, report, nil
}

// Status returns a snapshot of the engine counters.
func (e *Engine) Status() Status {
	applied, skipped := e.adapter.Counters()
	return Status{
		LearningEnabled: e.adapter.Enabled(),
		AdapterState:    e.adapter.State(),
		EventsApplied:   applied,
		EventsSkipped:   skipped,
		ScoredTotal:     e.scored.Load(),
		RecommendCalls:  e.recommendCalls.Load(),
	}
}

// resolveLimit applies the default and the cap to a requested top-K.
func (e *Engine) resolveLimit(requested int) int {
	if requested <= 0 {
		return e.config.Limits.DefaultLimit
	}
	if requested > e.config.Limits.MaxLimit {
		return e.config.Limits.MaxLimit
	}
	return requested
}

// sortRecommendations orders by total descending, then sooner deadline,
// then tender ID for a stable, deterministic ranking.
func sortRecommendations(items []Recommendation) {
	sort.Slice(items, func(i, j int) bool {
		a, b := &items[i], &items[j]
		if a.Breakdown.Total != b.Breakdown.Total {
			return a.Breakdown.Total > b.Breakdown.Total
		}
		if !a.Tender.Deadline.Equal(b.Tender.Deadline) {
			return a.Tender.Deadline.Before(b.Tender.Deadline)
		}
		return a.Tender.ID < b.Tender.ID
	})
}

// truncate returns at most limit items.
func truncate(items []Recommendation, limit int) []Recommendation {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}

// foldedMember reports membership under accent and case folding.
func foldedMember(list []string, value string) bool {
	folded := keywords.Fold(value)
	for _, entry := range list {
		if keywords.Fold(entry) == folded {
			return true
		}
	}
	return false
}

// clampUnit clamps to [0,1].
func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
