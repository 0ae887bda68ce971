// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

package recommend

import (
	"math"
	"testing"
)

func TestDefaultWeights(t *testing.T) {
	w := DefaultWeights()

	if !w.IsNormalized() {
		t.Errorf("default weights sum to %f, want 1", w.Sum())
	}
	if w.Sector != 0.25 {
		t.Errorf("sector weight = %f, want 0.25", w.Sector)
	}
	if w.Classification != 0.05 {
		t.Errorf("classification weight = %f, want 0.05", w.Classification)
	}
}

func TestWeightVector_Normalized(t *testing.T) {
	tests := []struct {
		name string
		in   WeightVector
		want WeightVector
	}{
		{
			name: "already normalized unchanged",
			in:   DefaultWeights(),
			want: DefaultWeights(),
		},
		{
			name: "doubled vector scaled back",
			in: WeightVector{
				Sector: 0.5, Geography: 0.4, Financial: 0.4,
				Temporal: 0.3, Keyword: 0.3, Classification: 0.1,
			},
			want: DefaultWeights(),
		},
		{
			name: "all-zero returned unchanged",
			in:   WeightVector{},
			want: WeightVector{},
		},
		{
			name: "single criterion takes everything",
			in:   WeightVector{Sector: 0.2},
			want: WeightVector{Sector: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalized()
			for _, c := range AllCriteria() {
				if math.Abs(got.Weight(c)-tt.want.Weight(c)) > 1e-9 {
					t.Errorf("weight %s = %f, want %f", c, got.Weight(c), tt.want.Weight(c))
				}
			}
		})
	}
}

func TestWeightVector_Clamped(t *testing.T) {
	w := WeightVector{Sector: 0.9, Geography: 0.005, Financial: 0.095}
	clamped := w.Clamped(0.01)

	for _, c := range AllCriteria() {
		if clamped.Weight(c) < 0.01 {
			t.Errorf("weight %s = %f, below floor", c, clamped.Weight(c))
		}
	}
	if clamped.Sector != 0.9 {
		t.Errorf("sector = %f, want untouched 0.9", clamped.Sector)
	}
}

func TestWeightVector_Floored(t *testing.T) {
	tests := []struct {
		name string
		in   WeightVector
	}{
		{
			name: "no entry below floor unchanged in shape",
			in:   DefaultWeights(),
		},
		{
			name: "negative entry pinned to floor",
			in: WeightVector{
				Sector: 0.9, Geography: -0.05, Financial: 0.05,
				Temporal: 0.05, Keyword: 0.03, Classification: 0.02,
			},
		},
		{
			name: "one dominant entry",
			in:   WeightVector{Sector: 1},
		},
	}

	const floor = 0.01
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Floored(floor)
			sum := 0.0
			for _, c := range AllCriteria() {
				if got.Weight(c) < floor-1e-9 {
					t.Errorf("weight %s = %f, below floor", c, got.Weight(c))
				}
				sum += got.Weight(c)
			}
			if math.Abs(sum-1) > 1e-9 {
				t.Errorf("floored vector sums to %f, want 1", sum)
			}
		})
	}

	t.Run("all zero returned unchanged", func(t *testing.T) {
		if got := (WeightVector{}).Floored(floor); !got.IsZero() {
			t.Errorf("Floored() = %+v, want zero vector", got)
		}
	})
}

func TestWeightVector_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      WeightVector
		wantErr bool
	}{
		{name: "defaults valid", in: DefaultWeights(), wantErr: false},
		{name: "unnormalized still valid", in: WeightVector{Sector: 3}, wantErr: false},
		{name: "negative entry rejected", in: WeightVector{Sector: -0.1, Geography: 1.1}, wantErr: true},
		{name: "all zero rejected", in: WeightVector{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMemoryWeightStore(t *testing.T) {
	store := NewMemoryWeightStore(DefaultWeights())

	t.Run("unknown user falls back to defaults", func(t *testing.T) {
		assertVectorsClose(t, store.Get("nobody"), DefaultWeights())
	})

	t.Run("set normalizes before storing", func(t *testing.T) {
		if err := store.Set("u1", WeightVector{Sector: 2, Geography: 2}); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		got := store.Get("u1")
		if math.Abs(got.Sector-0.5) > 1e-9 || math.Abs(got.Geography-0.5) > 1e-9 {
			t.Errorf("Get() = %+v, want 0.5/0.5 split", got)
		}
	})

	t.Run("set rejects invalid vectors", func(t *testing.T) {
		if err := store.Set("u1", WeightVector{}); err == nil {
			t.Error("Set() with all-zero vector succeeded, want error")
		}
		if err := store.Set("", DefaultWeights()); err == nil {
			t.Error("Set() with empty user id succeeded, want error")
		}
	})

	t.Run("delete restores defaults", func(t *testing.T) {
		if err := store.Delete("u1"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		assertVectorsClose(t, store.Get("u1"), DefaultWeights())
	})

	t.Run("zero default replaced", func(t *testing.T) {
		s := NewMemoryWeightStore(WeightVector{})
		assertVectorsClose(t, s.Get("anyone"), DefaultWeights())
	})
}

func assertVectorsClose(t *testing.T, got, want WeightVector) {
	t.Helper()
	for _, c := range AllCriteria() {
		if math.Abs(got.Weight(c)-want.Weight(c)) > 1e-9 {
			t.Errorf("weight %s = %f, want %f", c, got.Weight(c), want.Weight(c))
		}
	}
}
