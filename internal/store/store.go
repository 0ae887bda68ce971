// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

// Package store provides BadgerDB-backed persistence for profiles, tenders,
// interaction events and per-user weight vectors.
//
// All records share one Badger instance and are separated by key prefix.
// Values are JSON-encoded.
package store

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/hzerouali/tendermatch/internal/recommend"
)

// Options configures the Badger instance.
type Options struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps everything in RAM. Used by tests and ephemeral
	// deployments.
	InMemory bool
}

// Store bundles the typed stores sharing one Badger instance.
type Store struct {
	db *badger.DB

	Profiles     *ProfileStore
	Tenders      *TenderStore
	Interactions *InteractionLog
	Weights      *BadgerWeightStore
}

// Open opens the database and wires the typed stores. The default weight
// vector seeds the weight store's fallback.
func Open(opts Options, defaults recommend.WeightVector, logger zerolog.Logger) (*Store, error) {
	var badgerOpts badger.Options
	if opts.InMemory {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		badgerOpts = badger.DefaultOptions(opts.Path)
	}
	badgerOpts.Logger = nil // Badger's own logging is too chatty for production

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}

	interactions, err := NewInteractionLog(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:           db,
		Profiles:     NewProfileStore(db),
		Tenders:      NewTenderStore(db),
		Interactions: interactions,
		Weights:      NewBadgerWeightStore(db, defaults, logger),
	}, nil
}

// DB exposes the underlying Badger instance.
func (s *Store) DB() *badger.DB {
	return s.db
}

// Close releases the sequence bandwidth and closes the database.
func (s *Store) Close() error {
	if s.Interactions != nil {
		if err := s.Interactions.Close(); err != nil {
			s.db.Close()
			return fmt.Errorf("release interaction sequence: %w", err)
		}
	}
	return s.db.Close()
}
