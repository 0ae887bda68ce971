// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

package keywords

import (
	"testing"
)

func TestSuggestForSector(t *testing.T) {
	tests := []struct {
		name        string
		sector      string
		wantContain string
		wantGeneric bool
	}{
		{
			name:        "exact sector",
			sector:      "informatique",
			wantContain: "cybersécurité",
		},
		{
			name:        "fold-insensitive lookup",
			sector:      "BÂTIMENT",
			wantContain: "génie civil",
		},
		{
			name:        "partial sector name",
			sector:      "info",
			wantContain: "développement web",
		},
		{
			name:        "keyword-level match",
			sector:      "irrigation",
			wantContain: "irrigation",
		},
		{
			name:        "unknown sector falls back to generics",
			sector:      "astrologie",
			wantGeneric: true,
		},
		{
			name:        "empty sector falls back to generics",
			sector:      "  ",
			wantGeneric: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestForSector(tt.sector)
			if len(got) == 0 {
				t.Fatal("SuggestForSector() returned nothing")
			}

			if tt.wantGeneric {
				if len(got) != genericSuggestionLimit {
					t.Errorf("fallback returned %d keywords, want %d", len(got), genericSuggestionLimit)
				}
				if got[0] != genericKeywords[0] {
					t.Errorf("fallback[0] = %q, want %q", got[0], genericKeywords[0])
				}
				return
			}

			found := false
			for _, kw := range got {
				if kw == tt.wantContain {
					found = true
				}
			}
			if !found {
				t.Errorf("SuggestForSector(%q) = %v, want it to contain %q", tt.sector, got, tt.wantContain)
			}
		})
	}
}

func TestRelated(t *testing.T) {
	tests := []struct {
		name        string
		keyword     string
		limit       int
		wantContain string
	}{
		{
			name:        "synonym group from canonical",
			keyword:     "développement web",
			limit:       20,
			wantContain: "site web",
		},
		{
			name:        "canonical from variant",
			keyword:     "BTP",
			limit:       20,
			wantContain: "génie civil",
		},
		{
			name:        "shared-word dictionary entries",
			keyword:     "transport",
			limit:       50,
			wantContain: "transport scolaire",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Related(tt.keyword, tt.limit)
			found := false
			for _, kw := range got {
				if kw == tt.wantContain {
					found = true
				}
			}
			if !found {
				t.Errorf("Related(%q) = %v, want it to contain %q", tt.keyword, got, tt.wantContain)
			}
		})
	}

	if got := Related("transport", 3); len(got) > 3 {
		t.Errorf("Related() ignored limit, got %d results", len(got))
	}
	if got := Related("", 10); got != nil {
		t.Errorf("Related(\"\") = %v, want nil", got)
	}
}

func TestMatchSectors(t *testing.T) {
	scores := MatchSectors([]string{"irrigation", "semences"})
	if len(scores) == 0 {
		t.Fatal("MatchSectors() returned no scores")
	}

	best, bestScore := "", 0.0
	for sector, score := range scores {
		if score < 0 || score > 1 {
			t.Errorf("score for %s = %f, want within [0,1]", sector, score)
		}
		if score > bestScore {
			best, bestScore = sector, score
		}
	}
	if best != "agriculture" {
		t.Errorf("best sector = %s, want agriculture", best)
	}
	if bestScore != 1.0 {
		t.Errorf("best score = %f, want normalized 1.0", bestScore)
	}

	if got := MatchSectors(nil); len(got) != 0 {
		t.Errorf("MatchSectors(nil) = %v, want empty", got)
	}
}

func TestAllSectors(t *testing.T) {
	sectors := AllSectors()
	if len(sectors) != len(sectorKeywords) {
		t.Fatalf("AllSectors() returned %d sectors, want %d", len(sectors), len(sectorKeywords))
	}
	for i := 1; i < len(sectors); i++ {
		if sectors[i-1] >= sectors[i] {
			t.Errorf("AllSectors() not sorted at %d: %q >= %q", i, sectors[i-1], sectors[i])
		}
	}
}
