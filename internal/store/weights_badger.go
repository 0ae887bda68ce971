// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

package store

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/hzerouali/tendermatch/internal/recommend"
)

const weightsKeyPrefix = "weights:"

// BadgerWeightStore is a durable recommend.WeightStore. Get never fails:
// unknown users and read errors both fall back to the default vector, read
// errors with a log line.
type BadgerWeightStore struct {
	db       *badger.DB
	defaults recommend.WeightVector
	logger   zerolog.Logger
}

// NewBadgerWeightStore creates a weight store. A zero default vector is
// replaced with the engine defaults.
func NewBadgerWeightStore(db *badger.DB, defaults recommend.WeightVector, logger zerolog.Logger) *BadgerWeightStore {
	if defaults.IsZero() {
		defaults = recommend.DefaultWeights()
	}
	return &BadgerWeightStore{
		db:       db,
		defaults: defaults.Normalized(),
		logger:   logger.With().Str("component", "weight_store").Logger(),
	}
}

// Get implements recommend.WeightStore.
func (s *BadgerWeightStore) Get(userID string) recommend.WeightVector {
	var w recommend.WeightVector
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(weightsKeyPrefix + userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &w); err != nil {
				return err
			}
			found = true
			return nil
		})
	})
	if err != nil {
		s.logger.Error().Err(err).
			Str("user_id", userID).
			Msg("weight vector read failed, serving defaults")
		return s.defaults
	}
	if !found {
		return s.defaults
	}
	return w
}

// Set implements recommend.WeightStore.
func (s *BadgerWeightStore) Set(userID string, w recommend.WeightVector) error {
	if userID == "" {
		return fmt.Errorf("user id must not be empty")
	}
	if err := w.Validate(); err != nil {
		return fmt.Errorf("invalid weight vector for %s: %w", userID, err)
	}

	data, err := json.Marshal(w.Normalized())
	if err != nil {
		return fmt.Errorf("marshal weight vector: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(weightsKeyPrefix+userID), data)
	})
	if err != nil {
		return fmt.Errorf("store weight vector for %s: %w", userID, err)
	}
	return nil
}

// Delete implements recommend.WeightStore.
func (s *BadgerWeightStore) Delete(userID string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(weightsKeyPrefix + userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("delete weight vector for %s: %w", userID, err)
	}
	return nil
}

// compile-time interface compliance check
var _ recommend.WeightStore = (*BadgerWeightStore)(nil)
