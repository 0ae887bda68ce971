// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

package keywords

import (
	"testing"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Béton Armé", "beton arme"},
		{"Sécurité", "securite"},
		{"déjà", "deja"},
		{"plain ascii", "plain ascii"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Fold(tt.in); got != tt.want {
			t.Errorf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractor_TokenSet(t *testing.T) {
	e := NewExtractor(0)

	tests := []struct {
		name    string
		text    string
		want    []string
		absent  []string
	}{
		{
			name:   "strips stop words and punctuation",
			text:   "Travaux de construction d'un pont, selon le cahier des charges.",
			want:   []string{"travaux", "construction", "pont"},
			absent: []string{"de", "selon", "cahier", "charges", "le"},
		},
		{
			name:   "folds diacritics",
			text:   "Rénovation du réseau électrique",
			want:   []string{"renovation", "reseau", "electrique"},
			absent: []string{"rénovation"},
		},
		{
			name:   "drops short tokens",
			text:   "un ou et ab xy pont",
			want:   []string{"pont"},
			absent: []string{"ab", "xy"},
		},
		{
			name: "empty input yields empty set",
			text: "",
		},
		{
			name: "punctuation only yields empty set",
			text: "--- ,,, !!!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := e.TokenSet(tt.text)
			for _, w := range tt.want {
				if _, ok := set[w]; !ok {
					t.Errorf("TokenSet(%q) missing %q: %v", tt.text, w, set)
				}
			}
			for _, a := range tt.absent {
				if _, ok := set[a]; ok {
					t.Errorf("TokenSet(%q) should not contain %q", tt.text, a)
				}
			}
			if len(tt.want) == 0 && len(tt.absent) == 0 && len(set) != 0 {
				t.Errorf("TokenSet(%q) = %v, want empty", tt.text, set)
			}
		})
	}
}

func TestExtractor_TokenSet_Deterministic(t *testing.T) {
	e := NewExtractor(0)
	text := "Construction d'une école primaire à Rabat, travaux de construction"

	first := e.TokenSet(text)
	for i := 0; i < 10; i++ {
		again := e.TokenSet(text)
		if len(again) != len(first) {
			t.Fatalf("TokenSet not deterministic: %v vs %v", again, first)
		}
		for k := range first {
			if _, ok := again[k]; !ok {
				t.Fatalf("TokenSet not deterministic, missing %q", k)
			}
		}
	}
}

func TestExtractor_Extract(t *testing.T) {
	e := NewExtractor(0)

	got := e.Extract("réseau réseau réseau fibre fibre pose")
	if len(got) != 3 {
		t.Fatalf("Extract() = %v, want 3 tokens", got)
	}
	if got[0] != "reseau" || got[1] != "fibre" || got[2] != "pose" {
		t.Errorf("Extract() = %v, want frequency order [reseau fibre pose]", got)
	}

	if got := e.Extract(""); got != nil {
		t.Errorf("Extract(\"\") = %v, want nil", got)
	}
}

func TestOverlapMeasures(t *testing.T) {
	set := func(words ...string) map[string]struct{} {
		m := make(map[string]struct{}, len(words))
		for _, w := range words {
			m[w] = struct{}{}
		}
		return m
	}

	tests := []struct {
		name        string
		profile     map[string]struct{}
		tender      map[string]struct{}
		wantRecall  float64
		wantJaccard float64
	}{
		{
			name:        "half the profile matched",
			profile:     set("beton", "coffrage"),
			tender:      set("beton", "pont", "travaux"),
			wantRecall:  0.5,
			wantJaccard: 0.25,
		},
		{
			name:        "full overlap",
			profile:     set("beton"),
			tender:      set("beton"),
			wantRecall:  1.0,
			wantJaccard: 1.0,
		},
		{
			name:        "disjoint sets",
			profile:     set("beton"),
			tender:      set("fibre"),
			wantRecall:  0,
			wantJaccard: 0,
		},
		{
			name:        "empty profile",
			profile:     set(),
			tender:      set("fibre"),
			wantRecall:  0,
			wantJaccard: 0,
		},
		{
			name:        "both empty",
			profile:     set(),
			tender:      set(),
			wantRecall:  0,
			wantJaccard: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Recall(tt.profile, tt.tender); got != tt.wantRecall {
				t.Errorf("Recall() = %f, want %f", got, tt.wantRecall)
			}
			if got := Jaccard(tt.profile, tt.tender); got != tt.wantJaccard {
				t.Errorf("Jaccard() = %f, want %f", got, tt.wantJaccard)
			}
		})
	}
}
