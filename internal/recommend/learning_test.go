// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

package recommend

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hzerouali/tendermatch/internal/models"
)

// stubScorer returns a fixed value per criterion.
type stubScorer struct {
	criterion Criterion
	value     float64
}

func (s *stubScorer) Criterion() Criterion { return s.criterion }

func (s *stubScorer) Evaluate(_ *models.UserProfile, _ *models.Tender, _ time.Time) Score {
	return Score{Value: s.value}
}

// stubScorers builds one stub per criterion with the given values, keyed by
// canonical order.
func stubScorers(values map[Criterion]float64) func() []Scorer {
	scorers := make([]Scorer, 0, len(values))
	for _, c := range AllCriteria() {
		if v, ok := values[c]; ok {
			scorers = append(scorers, &stubScorer{criterion: c, value: v})
		}
	}
	return func() []Scorer { return scorers }
}

// sectorHeavy scores sector at 1.0 and everything else at 0.5, so positive
// feedback should push the sector weight up.
func sectorHeavy() func() []Scorer {
	values := make(map[Criterion]float64, len(AllCriteria()))
	for _, c := range AllCriteria() {
		values[c] = 0.5
	}
	values[CriterionSector] = 1.0
	return stubScorers(values)
}

func testLearningConfig() LearningConfig {
	return LearningConfig{Enabled: true, Rate: 0.01, Floor: 0.01}
}

func testTenderLookup(tenders ...*models.Tender) TenderLookup {
	byID := make(map[string]*models.Tender, len(tenders))
	for _, tender := range tenders {
		byID[tender.ID] = tender
	}
	return func(id string) (*models.Tender, bool) {
		t, ok := byID[id]
		return t, ok
	}
}

func learningFixtures() (*models.UserProfile, *models.Tender) {
	profile := &models.UserProfile{UserID: "u1"}
	tender := &models.Tender{
		ID:       "t1",
		Subject:  "Maintenance applicative",
		Deadline: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	}
	return profile, tender
}

func TestAdapter_Apply_Disabled(t *testing.T) {
	profile, tender := learningFixtures()
	store := NewMemoryWeightStore(DefaultWeights())
	cfg := testLearningConfig()
	cfg.Enabled = false
	adapter := NewAdapter(cfg, sectorHeavy(), store, zerolog.Nop())

	events := []models.InteractionEvent{
		{UserID: "u1", TenderID: "t1", Kind: models.EventApply},
	}
	got, report, err := adapter.Apply(context.Background(), profile, events, testTenderLookup(tender))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if report.Applied != 0 || len(report.Skipped) != 0 {
		t.Errorf("report = %+v, want untouched", report)
	}
	assertVectorsClose(t, got, DefaultWeights())
}

func TestAdapter_Apply_EmptyBatchIdentity(t *testing.T) {
	profile, _ := learningFixtures()
	store := NewMemoryWeightStore(DefaultWeights())
	adapter := NewAdapter(testLearningConfig(), sectorHeavy(), store, zerolog.Nop())

	got, report, err := adapter.Apply(context.Background(), profile, nil, nil)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if report.Applied != 0 {
		t.Errorf("report.Applied = %d, want 0", report.Applied)
	}
	assertVectorsClose(t, got, DefaultWeights())
}

func TestAdapter_Apply_PositiveEventRaisesStrongCriterion(t *testing.T) {
	tests := []struct {
		name string
		kind models.EventKind
	}{
		{name: "apply", kind: models.EventApply},
		{name: "favorite", kind: models.EventFavorite},
		{name: "click", kind: models.EventClick},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, tender := learningFixtures()
			store := NewMemoryWeightStore(DefaultWeights())
			adapter := NewAdapter(testLearningConfig(), sectorHeavy(), store, zerolog.Nop())

			events := []models.InteractionEvent{
				{UserID: "u1", TenderID: "t1", Kind: tt.kind, Timestamp: time.Now()},
			}
			got, report, err := adapter.Apply(context.Background(), profile, events, testTenderLookup(tender))
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if report.Applied != 1 {
				t.Fatalf("report.Applied = %d, want 1", report.Applied)
			}

			defaults := DefaultWeights()
			if got.Sector <= defaults.Sector {
				t.Errorf("sector weight = %f, want above %f", got.Sector, defaults.Sector)
			}
			if got.Geography >= defaults.Geography {
				t.Errorf("geography weight = %f, want below %f", got.Geography, defaults.Geography)
			}
			if !got.IsNormalized() {
				t.Errorf("adapted vector sums to %f, want 1", got.Sum())
			}
			assertVectorsClose(t, store.Get("u1"), got)
		})
	}
}

func TestAdapter_Apply_DismissLowersStrongCriterion(t *testing.T) {
	profile, tender := learningFixtures()
	store := NewMemoryWeightStore(DefaultWeights())
	adapter := NewAdapter(testLearningConfig(), sectorHeavy(), store, zerolog.Nop())

	events := []models.InteractionEvent{
		{UserID: "u1", TenderID: "t1", Kind: models.EventDismiss, Timestamp: time.Now()},
	}
	got, _, err := adapter.Apply(context.Background(), profile, events, testTenderLookup(tender))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if got.Sector >= DefaultWeights().Sector {
		t.Errorf("sector weight = %f, want below default after dismiss", got.Sector)
	}
	if !got.IsNormalized() {
		t.Errorf("adapted vector sums to %f, want 1", got.Sum())
	}
}

func TestAdapter_Apply_ViewIsWeightNeutral(t *testing.T) {
	profile, tender := learningFixtures()
	store := NewMemoryWeightStore(DefaultWeights())
	adapter := NewAdapter(testLearningConfig(), sectorHeavy(), store, zerolog.Nop())

	events := []models.InteractionEvent{
		{UserID: "u1", TenderID: "t1", Kind: models.EventView, Timestamp: time.Now()},
	}
	got, report, err := adapter.Apply(context.Background(), profile, events, testTenderLookup(tender))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if report.Applied != 1 {
		t.Errorf("report.Applied = %d, want 1 (views are recorded)", report.Applied)
	}
	assertVectorsClose(t, got, DefaultWeights())
}

func TestAdapter_Apply_MalformedEventsSkipped(t *testing.T) {
	profile, tender := learningFixtures()
	store := NewMemoryWeightStore(DefaultWeights())
	adapter := NewAdapter(testLearningConfig(), sectorHeavy(), store, zerolog.Nop())

	events := []models.InteractionEvent{
		{UserID: "u1", TenderID: "t1", Kind: "purchase"},
		{UserID: "someone-else", TenderID: "t1", Kind: models.EventApply},
		{UserID: "u1", TenderID: "unknown", Kind: models.EventApply},
		{UserID: "u1", Kind: models.EventApply},
		{UserID: "u1", TenderID: "t1", Kind: models.EventApply},
	}
	got, report, err := adapter.Apply(context.Background(), profile, events, testTenderLookup(tender))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if report.Applied != 1 {
		t.Errorf("report.Applied = %d, want 1", report.Applied)
	}
	if len(report.Skipped) != 4 {
		t.Errorf("len(report.Skipped) = %d, want 4", len(report.Skipped))
	}
	if got.Sector <= DefaultWeights().Sector {
		t.Errorf("sector weight = %f, the single valid apply event should still adjust", got.Sector)
	}

	applied, skipped := adapter.Counters()
	if applied != 1 || skipped != 4 {
		t.Errorf("Counters() = %d/%d, want 1/4", applied, skipped)
	}
}

func TestAdapter_Apply_FloorAndNormalization(t *testing.T) {
	profile, tender := learningFixtures()
	store := NewMemoryWeightStore(DefaultWeights())
	cfg := testLearningConfig()
	cfg.Rate = 0.2 // aggressive rate to push weights toward the floor
	adapter := NewAdapter(cfg, sectorHeavy(), store, zerolog.Nop())

	events := make([]models.InteractionEvent, 40)
	for i := range events {
		events[i] = models.InteractionEvent{UserID: "u1", TenderID: "t1", Kind: models.EventApply}
	}

	var got WeightVector
	var err error
	for batch := 0; batch < 3; batch++ {
		got, _, err = adapter.Apply(context.Background(), profile, events, testTenderLookup(tender))
		if err != nil {
			t.Fatalf("Apply() batch %d error = %v", batch, err)
		}
	}

	for _, c := range AllCriteria() {
		if got.Weight(c) < cfg.Floor-1e-9 {
			t.Errorf("weight %s = %f, below floor %f", c, got.Weight(c), cfg.Floor)
		}
	}
	if math.Abs(got.Sum()-1) > weightEpsilon {
		t.Errorf("vector sums to %f, want 1", got.Sum())
	}
}

func TestAdapter_Apply_ContextCancelled(t *testing.T) {
	profile, tender := learningFixtures()
	store := NewMemoryWeightStore(DefaultWeights())
	adapter := NewAdapter(testLearningConfig(), sectorHeavy(), store, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	events := []models.InteractionEvent{
		{UserID: "u1", TenderID: "t1", Kind: models.EventApply},
	}
	_, _, err := adapter.Apply(ctx, profile, events, testTenderLookup(tender))
	if err == nil {
		t.Fatal("Apply() with cancelled context succeeded, want error")
	}
	assertVectorsClose(t, store.Get("u1"), DefaultWeights())
}

func TestAdapter_State(t *testing.T) {
	store := NewMemoryWeightStore(DefaultWeights())
	adapter := NewAdapter(testLearningConfig(), sectorHeavy(), store, zerolog.Nop())
	if got := adapter.State(); got != "idle" {
		t.Errorf("State() = %q, want idle", got)
	}
}
