// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

package recommend

import (
	"fmt"
	"math"
	"sync"
)

// weightEpsilon is the tolerance on the weight-sum invariant. Vectors whose
// sum deviates from 1 by more than this are renormalized before use.
const weightEpsilon = 1e-6

// WeightVector holds one weight per criterion. A usable vector has
// non-negative entries summing to 1 within weightEpsilon.
type WeightVector struct {
	Sector         float64 `json:"sector"`
	Geography      float64 `json:"geography"`
	Financial      float64 `json:"financial"`
	Temporal       float64 `json:"temporal"`
	Keyword        float64 `json:"keyword"`
	Classification float64 `json:"classification"`
}

// DefaultWeights returns the baseline vector. The entries sum to exactly 1.
func DefaultWeights() WeightVector {
	return WeightVector{
		Sector:         0.25,
		Geography:      0.20,
		Financial:      0.20,
		Temporal:       0.15,
		Keyword:        0.15,
		Classification: 0.05,
	}
}

// Weight returns the entry for the given criterion, 0 for unknown ones.
func (w WeightVector) Weight(c Criterion) float64 {
	switch c {
	case CriterionSector:
		return w.Sector
	case CriterionGeography:
		return w.Geography
	case CriterionFinancial:
		return w.Financial
	case CriterionTemporal:
		return w.Temporal
	case CriterionKeyword:
		return w.Keyword
	case CriterionClassification:
		return w.Classification
	}
	return 0
}

// setWeight writes the entry for the given criterion.
func (w *WeightVector) setWeight(c Criterion, v float64) {
	switch c {
	case CriterionSector:
		w.Sector = v
	case CriterionGeography:
		w.Geography = v
	case CriterionFinancial:
		w.Financial = v
	case CriterionTemporal:
		w.Temporal = v
	case CriterionKeyword:
		w.Keyword = v
	case CriterionClassification:
		w.Classification = v
	}
}

// Sum returns the total of all entries.
func (w WeightVector) Sum() float64 {
	return w.Sector + w.Geography + w.Financial + w.Temporal + w.Keyword + w.Classification
}

// Normalized returns a copy scaled so the entries sum to 1. An all-zero
// vector is returned unchanged; callers handle that case explicitly.
func (w WeightVector) Normalized() WeightVector {
	sum := w.Sum()
	if sum == 0 {
		return w
	}
	return WeightVector{
		Sector:         w.Sector / sum,
		Geography:      w.Geography / sum,
		Financial:      w.Financial / sum,
		Temporal:       w.Temporal / sum,
		Keyword:        w.Keyword / sum,
		Classification: w.Classification / sum,
	}
}

// Clamped returns a copy with every entry raised to at least floor.
func (w WeightVector) Clamped(floor float64) WeightVector {
	for _, c := range AllCriteria() {
		if w.Weight(c) < floor {
			w.setWeight(c, floor)
		}
	}
	return w
}

// Floored returns a normalized copy where every entry is at least floor.
// Entries below the floor are pinned to it and the remaining mass is split
// proportionally across the rest, repeating until no entry sinks below the
// floor. An all-zero vector is returned unchanged.
func (w WeightVector) Floored(floor float64) WeightVector {
	w = w.Normalized()
	if w.IsZero() {
		return w
	}

	criteria := AllCriteria()
	fixed := make(map[Criterion]bool, len(criteria))
	for iter := 0; iter < len(criteria); iter++ {
		freeSum := 0.0
		for _, c := range criteria {
			if !fixed[c] {
				freeSum += w.Weight(c)
			}
		}
		remaining := 1 - floor*float64(len(fixed))

		if freeSum <= 0 {
			for _, c := range criteria {
				fixed[c] = true
			}
			continue
		}

		changed := false
		for _, c := range criteria {
			if fixed[c] {
				continue
			}
			if w.Weight(c)/freeSum*remaining < floor {
				fixed[c] = true
				changed = true
			}
		}
		if changed {
			continue
		}

		for _, c := range criteria {
			if fixed[c] {
				w.setWeight(c, floor)
			} else {
				w.setWeight(c, w.Weight(c)/freeSum*remaining)
			}
		}
		return w
	}

	// Every entry sank to the floor; only a uniform split satisfies both
	// the floor and the sum-to-one invariant.
	uniform := 1.0 / float64(len(criteria))
	for _, c := range criteria {
		w.setWeight(c, uniform)
	}
	return w
}

// IsNormalized reports whether the entries sum to 1 within weightEpsilon.
func (w WeightVector) IsNormalized() bool {
	return math.Abs(w.Sum()-1) <= weightEpsilon
}

// IsZero reports whether every entry is zero.
func (w WeightVector) IsZero() bool {
	return w.Sum() == 0
}

// Validate rejects negative entries and all-zero vectors.
func (w WeightVector) Validate() error {
	for _, c := range AllCriteria() {
		if v := w.Weight(c); v < 0 {
			return fmt.Errorf("weight %s must be non-negative, got %f", c, v)
		}
	}
	if w.IsZero() {
		return fmt.Errorf("weight vector must not be all zero")
	}
	return nil
}

// ToMap returns the vector as a criterion-keyed map.
func (w WeightVector) ToMap() CriterionScores {
	m := make(CriterionScores, len(AllCriteria()))
	for _, c := range AllCriteria() {
		m[c] = w.Weight(c)
	}
	return m
}

// WeightStore provides per-user weight vectors. Get falls back to the
// default vector for unknown users and never fails; Set validates and
// renormalizes before persisting.
//
// Implementations must be safe for concurrent use.
type WeightStore interface {
	// Get returns the user's personalized vector, or the default when the
	// user has none.
	Get(userID string) WeightVector

	// Set stores the user's personalized vector.
	Set(userID string, w WeightVector) error

	// Delete removes the user's personalized vector, restoring the
	// default on subsequent Gets.
	Delete(userID string) error
}

// MemoryWeightStore is an in-memory WeightStore. Suitable for tests and
// single-process deployments without durability needs.
type MemoryWeightStore struct {
	mu       sync.RWMutex
	defaults WeightVector
	byUser   map[string]WeightVector
}

// NewMemoryWeightStore builds a store backed by the given default vector.
// A zero default is replaced by DefaultWeights.
func NewMemoryWeightStore(defaults WeightVector) *MemoryWeightStore {
	if defaults.IsZero() {
		defaults = DefaultWeights()
	}
	return &MemoryWeightStore{
		defaults: defaults.Normalized(),
		byUser:   make(map[string]WeightVector),
	}
}

// Get implements WeightStore.
func (s *MemoryWeightStore) Get(userID string) WeightVector {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if w, ok := s.byUser[userID]; ok {
		return w
	}
	return s.defaults
}

// Set implements WeightStore.
func (s *MemoryWeightStore) Set(userID string, w WeightVector) error {
	if userID == "" {
		return fmt.Errorf("user id must not be empty")
	}
	if err := w.Validate(); err != nil {
		return fmt.Errorf("invalid weight vector for %s: %w", userID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byUser[userID] = w.Normalized()
	return nil
}

// Delete implements WeightStore.
func (s *MemoryWeightStore) Delete(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byUser, userID)
	return nil
}

// compile-time interface compliance check
var _ WeightStore = (*MemoryWeightStore)(nil)
