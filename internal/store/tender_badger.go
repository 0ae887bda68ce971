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

const tenderKeyPrefix = "tender:"

// ErrTenderNotFound is returned when no tender exists for an ID.
var ErrTenderNotFound = errors.New("tender not found")

// TenderStore persists the tender catalog keyed by tender ID.
type TenderStore struct {
	db *badger.DB
}

// NewTenderStore creates a tender store over the given database.
func NewTenderStore(db *badger.DB) *TenderStore {
	return &TenderStore{db: db}
}

// Put stores one tender.
func (s *TenderStore) Put(ctx context.Context, tender *models.Tender) error {
	start := time.Now()

	if tender.ID == "" {
		return fmt.Errorf("tender id is required")
	}
	if tender.PublishedAt.IsZero() {
		tender.PublishedAt = time.Now().UTC()
	}

	data, err := json.Marshal(tender)
	if err != nil {
		return fmt.Errorf("marshal tender: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(tenderKeyPrefix+tender.ID), data)
	})
	metrics.RecordStoreOperation("tenders", "put", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("store tender %s: %w", tender.ID, err)
	}
	return nil
}

// PutBatch stores a batch of tenders, isolating per-item failures. It
// returns the number stored and one error per rejected tender.
func (s *TenderStore) PutBatch(ctx context.Context, tenders []models.Tender) (int, []error) {
	stored := 0
	var failures []error
	for i := range tenders {
		if err := ctx.Err(); err != nil {
			failures = append(failures, err)
			return stored, failures
		}
		if err := s.Put(ctx, &tenders[i]); err != nil {
			failures = append(failures, err)
			continue
		}
		stored++
	}
	return stored, failures
}

// Get retrieves a tender by ID.
func (s *TenderStore) Get(ctx context.Context, id string) (*models.Tender, error) {
	start := time.Now()
	var tender models.Tender

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(tenderKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrTenderNotFound
		}
		if err != nil {
			return fmt.Errorf("get tender: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &tender)
		})
	})
	metrics.RecordStoreOperation("tenders", "get", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return &tender, nil
}

// Delete removes a tender. Deleting an absent tender is not an error.
func (s *TenderStore) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(tenderKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
	metrics.RecordStoreOperation("tenders", "delete", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("delete tender %s: %w", id, err)
	}
	return nil
}

// ListActive returns tenders whose deadline has not passed at the given
// instant. These are the recommendation candidates.
func (s *TenderStore) ListActive(ctx context.Context, now time.Time) ([]models.Tender, error) {
	return s.list(ctx, func(t *models.Tender) bool { return !t.Expired(now) })
}

// List returns the whole catalog, expired tenders included.
func (s *TenderStore) List(ctx context.Context) ([]models.Tender, error) {
	return s.list(ctx, func(*models.Tender) bool { return true })
}

func (s *TenderStore) list(ctx context.Context, keep func(*models.Tender) bool) ([]models.Tender, error) {
	start := time.Now()
	var tenders []models.Tender

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(tenderKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var tender models.Tender
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &tender)
			})
			if err != nil {
				return fmt.Errorf("unmarshal tender: %w", err)
			}
			if keep(&tender) {
				tenders = append(tenders, tender)
			}
		}
		return nil
	})
	metrics.RecordStoreOperation("tenders", "list", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return tenders, nil
}

// Count returns the catalog size.
func (s *TenderStore) Count(ctx context.Context) (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(tenderKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}
