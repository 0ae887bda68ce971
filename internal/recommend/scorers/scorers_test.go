// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

package scorers

import (
	"math"
	"testing"
	"time"

	"github.com/hzerouali/tendermatch/internal/models"
	"github.com/hzerouali/tendermatch/internal/recommend"
)

var testNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func f(v float64) *float64 { return &v }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDefault(t *testing.T) {
	set := Default(recommend.DefaultConfig())
	if len(set) != len(recommend.AllCriteria()) {
		t.Fatalf("Default() returned %d scorers, want %d", len(set), len(recommend.AllCriteria()))
	}
	for i, c := range recommend.AllCriteria() {
		if set[i].Criterion() != c {
			t.Errorf("scorer %d criterion = %s, want %s", i, set[i].Criterion(), c)
		}
	}

	if got := Default(nil); len(got) != len(set) {
		t.Errorf("Default(nil) should fall back to default config")
	}
}

func TestSector_Evaluate(t *testing.T) {
	tests := []struct {
		name    string
		partial float64
		profile models.UserProfile
		tender  models.Tender
		want    float64
	}{
		{
			name:    "exact match scores 1",
			profile: models.UserProfile{Sectors: []string{"bâtiment"}},
			tender:  models.Tender{Sector: "bâtiment"},
			want:    1.0,
		},
		{
			name:    "match is fold-insensitive",
			profile: models.UserProfile{Sectors: []string{"Bâtiment"}},
			tender:  models.Tender{Sector: "BATIMENT"},
			want:    1.0,
		},
		{
			name:    "mismatch scores 0 by default",
			profile: models.UserProfile{Sectors: []string{"informatique"}},
			tender:  models.Tender{Sector: "bâtiment"},
			want:    0.0,
		},
		{
			name:    "mismatch scores the configured partial credit",
			partial: 0.3,
			profile: models.UserProfile{Sectors: []string{"informatique"}},
			tender:  models.Tender{Sector: "bâtiment"},
			want:    0.3,
		},
		{
			name:    "empty profile sectors are neutral",
			profile: models.UserProfile{},
			tender:  models.Tender{Sector: "bâtiment"},
			want:    0.5,
		},
		{
			name:    "missing tender sector is neutral",
			profile: models.UserProfile{Sectors: []string{"informatique"}},
			tender:  models.Tender{},
			want:    0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSector(recommend.ScorerConfig{SectorPartialScore: tt.partial})
			got := s.Evaluate(&tt.profile, &tt.tender, testNow)
			if !almostEqual(got.Value, tt.want) {
				t.Errorf("Evaluate() = %f, want %f", got.Value, tt.want)
			}
		})
	}
}

func TestGeography_Evaluate(t *testing.T) {
	tests := []struct {
		name    string
		profile models.UserProfile
		tender  models.Tender
		want    float64
	}{
		{
			name:    "preferred city scores 1",
			profile: models.UserProfile{PreferredCities: []string{"Rabat"}},
			tender:  models.Tender{City: "rabat"},
			want:    1.0,
		},
		{
			name: "local radius gives nothing elsewhere",
			profile: models.UserProfile{
				PreferredCities: []string{"Rabat"},
				Radius:          models.RadiusLocal,
			},
			tender: models.Tender{City: "Marrakech"},
			want:   0.0,
		},
		{
			name: "regional radius gives half credit elsewhere",
			profile: models.UserProfile{
				PreferredCities: []string{"Rabat"},
				Radius:          models.RadiusRegional,
			},
			tender: models.Tender{City: "Marrakech"},
			want:   0.5,
		},
		{
			name: "national radius is indifferent to the city",
			profile: models.UserProfile{
				PreferredCities: []string{"Rabat"},
				Radius:          models.RadiusNational,
			},
			tender: models.Tender{City: "Marrakech"},
			want:   1.0,
		},
		{
			name: "missing radius defaults to national",
			profile: models.UserProfile{
				PreferredCities: []string{"Rabat"},
			},
			tender: models.Tender{City: "Marrakech"},
			want:   1.0,
		},
		{
			name: "excluded city forces zero even when preferred",
			profile: models.UserProfile{
				PreferredCities: []string{"Rabat"},
				ExcludedCities:  []string{"Rabat"},
			},
			tender: models.Tender{City: "Rabat"},
			want:   0.0,
		},
		{
			name:    "no preferred cities is neutral",
			profile: models.UserProfile{Radius: models.RadiusLocal},
			tender:  models.Tender{City: "Rabat"},
			want:    0.5,
		},
		{
			name:    "missing tender city is neutral",
			profile: models.UserProfile{PreferredCities: []string{"Rabat"}},
			tender:  models.Tender{},
			want:    0.5,
		},
	}

	g := NewGeography()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.Evaluate(&tt.profile, &tt.tender, testNow)
			if !almostEqual(got.Value, tt.want) {
				t.Errorf("Evaluate() = %f, want %f", got.Value, tt.want)
			}
		})
	}
}

func TestFinancial_Evaluate(t *testing.T) {
	tests := []struct {
		name    string
		profile models.UserProfile
		tender  models.Tender
		want    float64
	}{
		{
			name:    "budget inside range scores 1",
			profile: models.UserProfile{BudgetMin: f(1000), BudgetMax: f(10000)},
			tender:  models.Tender{Budget: f(5000)},
			want:    1.0,
		},
		{
			name:    "nil profile bounds are unconstrained",
			profile: models.UserProfile{},
			tender:  models.Tender{Budget: f(1e9)},
			want:    1.0,
		},
		{
			name:    "nil tender amounts are unpenalized",
			profile: models.UserProfile{BudgetMin: f(1000), BudgetMax: f(10000), CautionMax: f(500)},
			tender:  models.Tender{},
			want:    1.0,
		},
		{
			name:    "budget 50 percent over max loses half",
			profile: models.UserProfile{BudgetMax: f(10000)},
			tender:  models.Tender{Budget: f(15000)},
			want:    0.5,
		},
		{
			name:    "budget far over max floors at zero",
			profile: models.UserProfile{BudgetMax: f(10000)},
			tender:  models.Tender{Budget: f(50000)},
			want:    0.0,
		},
		{
			name:    "budget under min penalized proportionally",
			profile: models.UserProfile{BudgetMin: f(10000)},
			tender:  models.Tender{Budget: f(7500)},
			want:    0.75,
		},
		{
			name:    "caution over cap penalized",
			profile: models.UserProfile{CautionMax: f(1000)},
			tender:  models.Tender{Caution: f(1500)},
			want:    0.5,
		},
		{
			name:    "worst violation decides",
			profile: models.UserProfile{BudgetMax: f(10000), CautionMax: f(1000)},
			tender:  models.Tender{Budget: f(11000), Caution: f(2000)},
			want:    0.0,
		},
	}

	fin := NewFinancial()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fin.Evaluate(&tt.profile, &tt.tender, testNow)
			if !almostEqual(got.Value, tt.want) {
				t.Errorf("Evaluate() = %f, want %f", got.Value, tt.want)
			}
		})
	}
}

func TestTemporal_Evaluate(t *testing.T) {
	deadlineIn := func(days int) time.Time { return testNow.AddDate(0, 0, days) }

	tests := []struct {
		name       string
		preference models.DelayPreference
		deadline   time.Time
		want       float64
	}{
		{"short within 30 days", models.DelayShort, deadlineIn(20), 1.0},
		{"short at 50 days decays", models.DelayShort, deadlineIn(50), 0.8},
		{"short very far floors at 0.3", models.DelayShort, deadlineIn(300), 0.3},
		{"medium in band", models.DelayMedium, deadlineIn(60), 1.0},
		{"medium out of band", models.DelayMedium, deadlineIn(10), 0.6},
		{"long beyond 90", models.DelayLong, deadlineIn(120), 1.0},
		{"long too soon", models.DelayLong, deadlineIn(45), 0.7},
		{"any preference", models.DelayAny, deadlineIn(10), 0.8},
		{"no preference behaves as any", "", deadlineIn(10), 0.8},
		{"expired always zero", models.DelayAny, deadlineIn(-1), 0.0},
	}

	tmp := NewTemporal()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := models.UserProfile{DelayPreference: tt.preference}
			tender := models.Tender{Deadline: tt.deadline}
			got := tmp.Evaluate(&profile, &tender, testNow)
			if !almostEqual(got.Value, tt.want) {
				t.Errorf("Evaluate() = %f, want %f", got.Value, tt.want)
			}
		})
	}

	t.Run("zero deadline is neutral", func(t *testing.T) {
		got := tmp.Evaluate(&models.UserProfile{}, &models.Tender{}, testNow)
		if !almostEqual(got.Value, 0.5) {
			t.Errorf("Evaluate() = %f, want 0.5", got.Value)
		}
	})
}

func TestKeyword_Evaluate(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		profile models.UserProfile
		tender  models.Tender
		want    float64
	}{
		{
			name:    "empty profile keywords score exactly neutral",
			profile: models.UserProfile{},
			tender:  models.Tender{Subject: "Construction d'un pont"},
			want:    0.5,
		},
		{
			name:    "full recall",
			profile: models.UserProfile{Keywords: []string{"béton"}},
			tender:  models.Tender{Subject: "Fourniture de beton pour ouvrage d'art"},
			want:    1.0,
		},
		{
			name:    "half recall",
			profile: models.UserProfile{Keywords: []string{"béton", "coffrage"}},
			tender:  models.Tender{Subject: "Fourniture de beton"},
			want:    0.5,
		},
		{
			name:    "analysis text counts too",
			profile: models.UserProfile{Keywords: []string{"irrigation"}},
			tender: models.Tender{
				Subject:      "Aménagement agricole",
				AnalysisText: "Travaux d'irrigation localisée",
			},
			want: 1.0,
		},
		{
			name:    "no overlap scores zero",
			profile: models.UserProfile{Keywords: []string{"fibre"}},
			tender:  models.Tender{Subject: "Construction d'un pont"},
			want:    0.0,
		},
		{
			name:    "jaccard mode divides by the union",
			mode:    "jaccard",
			profile: models.UserProfile{Keywords: []string{"beton"}},
			tender:  models.Tender{Subject: "beton pont travaux"},
			want:    1.0 / 3.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := recommend.ScorerConfig{KeywordMode: tt.mode, KeywordMinTokenLength: 3}
			k := NewKeyword(cfg)
			got := k.Evaluate(&tt.profile, &tt.tender, testNow)
			if !almostEqual(got.Value, tt.want) {
				t.Errorf("Evaluate() = %f, want %f", got.Value, tt.want)
			}
		})
	}
}

func TestClassification_Evaluate(t *testing.T) {
	tests := []struct {
		name    string
		profile models.UserProfile
		tender  models.Tender
		want    float64
	}{
		{
			name:    "preferred classification scores 1",
			profile: models.UserProfile{PreferredClassifications: []string{"Travaux"}},
			tender:  models.Tender{Classification: "travaux"},
			want:    1.0,
		},
		{
			name:    "other classification scores 0",
			profile: models.UserProfile{PreferredClassifications: []string{"Travaux"}},
			tender:  models.Tender{Classification: "Fournitures"},
			want:    0.0,
		},
		{
			name:    "empty preferences are neutral",
			profile: models.UserProfile{},
			tender:  models.Tender{Classification: "Travaux"},
			want:    0.5,
		},
		{
			name:    "missing tender classification is neutral",
			profile: models.UserProfile{PreferredClassifications: []string{"Travaux"}},
			tender:  models.Tender{},
			want:    0.5,
		},
	}

	c := NewClassification()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Evaluate(&tt.profile, &tt.tender, testNow)
			if !almostEqual(got.Value, tt.want) {
				t.Errorf("Evaluate() = %f, want %f", got.Value, tt.want)
			}
		})
	}
}

func TestScorers_RangeInvariant(t *testing.T) {
	// Adversarial pairs must never escape [0,1] on any criterion.
	profiles := []models.UserProfile{
		{},
		{
			Sectors:         []string{"bâtiment"},
			PreferredCities: []string{"Rabat"},
			Radius:          models.RadiusLocal,
			BudgetMin:       f(1e6),
			BudgetMax:       f(1),
			CautionMax:      f(0),
			DelayPreference: models.DelayShort,
			Keywords:        []string{"a", "de", "béton"},
		},
	}
	tenders := []models.Tender{
		{},
		{
			Sector:   "inconnu",
			City:     "Nulle-Part",
			Budget:   f(1e12),
			Caution:  f(1e12),
			Deadline: testNow.AddDate(-1, 0, 0),
			Subject:  "!!!",
		},
	}

	for _, s := range Default(recommend.DefaultConfig()) {
		for pi := range profiles {
			for ti := range tenders {
				got := s.Evaluate(&profiles[pi], &tenders[ti], testNow)
				if got.Value < 0 || got.Value > 1 {
					t.Errorf("%s score %f out of [0,1] for profile %d tender %d",
						s.Criterion(), got.Value, pi, ti)
				}
			}
		}
	}
}
