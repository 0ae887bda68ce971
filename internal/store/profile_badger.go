// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/hzerouali/tendermatch/internal/metrics"
	"github.com/hzerouali/tendermatch/internal/models"
)

const profileKeyPrefix = "profile:"

// ErrProfileNotFound is returned when no profile exists for a user ID.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileStore persists user profiles keyed by user ID.
type ProfileStore struct {
	db *badger.DB
}

// NewProfileStore creates a profile store over the given database.
func NewProfileStore(db *badger.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// Put stores a profile, stamping timestamps and recomputing completeness.
func (s *ProfileStore) Put(ctx context.Context, profile *models.UserProfile) error {
	start := time.Now()

	if profile.UserID == "" {
		return fmt.Errorf("profile user id is required")
	}

	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	profile.RecomputeCompleteness()

	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(profileKeyPrefix+profile.UserID), data)
	})
	metrics.RecordStoreOperation("profiles", "put", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("store profile %s: %w", profile.UserID, err)
	}
	return nil
}

// Get retrieves a profile by user ID.
func (s *ProfileStore) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	start := time.Now()
	var profile models.UserProfile

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(profileKeyPrefix + userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrProfileNotFound
		}
		if err != nil {
			return fmt.Errorf("get profile: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &profile)
		})
	})
	metrics.RecordStoreOperation("profiles", "get", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Delete removes a profile. Deleting an absent profile is not an error.
func (s *ProfileStore) Delete(ctx context.Context, userID string) error {
	start := time.Now()
	err := s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(profileKeyPrefix + userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
	metrics.RecordStoreOperation("profiles", "delete", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("delete profile %s: %w", userID, err)
	}
	return nil
}

// List returns every stored profile.
func (s *ProfileStore) List(ctx context.Context) ([]*models.UserProfile, error) {
	start := time.Now()
	var profiles []*models.UserProfile

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(profileKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var profile models.UserProfile
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &profile)
			})
			if err != nil {
				return fmt.Errorf("unmarshal profile: %w", err)
			}
			profiles = append(profiles, &profile)
		}
		return nil
	})
	metrics.RecordStoreOperation("profiles", "list", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return profiles, nil
}
