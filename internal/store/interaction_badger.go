// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/hzerouali/tendermatch/internal/metrics"
	"github.com/hzerouali/tendermatch/internal/models"
)

const (
	eventKeyPrefix  = "event:"
	offsetKeyPrefix = "offset:"
	eventSeqKey     = "seq:events"

	// eventSeqBandwidth is how many sequence numbers Badger leases at a
	// time. Crashes may leave gaps of at most this size; ordering is
	// unaffected.
	eventSeqBandwidth = 128
)

// LoggedEvent is an interaction event with its log position.
type LoggedEvent struct {
	Seq uint64 `json:"seq"`
	models.InteractionEvent
}

// InteractionLog is an append-only event log with monotonically increasing
// sequence numbers. Consumers track their own position with named offsets.
type InteractionLog struct {
	db  *badger.DB
	seq *badger.Sequence
}

// NewInteractionLog creates the log and claims its sequence.
func NewInteractionLog(db *badger.DB) (*InteractionLog, error) {
	seq, err := db.GetSequence([]byte(eventSeqKey), eventSeqBandwidth)
	if err != nil {
		return nil, fmt.Errorf("claim event sequence: %w", err)
	}
	return &InteractionLog{db: db, seq: seq}, nil
}

// Append records one event and returns its sequence number. A missing
// event ID is filled with a fresh UUID; a missing timestamp with now.
func (l *InteractionLog) Append(ctx context.Context, event *models.InteractionEvent) (uint64, error) {
	start := time.Now()

	if !event.Kind.Valid() {
		return 0, fmt.Errorf("unknown event kind %q", event.Kind)
	}
	if event.UserID == "" || event.TenderID == "" {
		return 0, fmt.Errorf("event user id and tender id are required")
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	seq, err := l.seq.Next()
	if err != nil {
		return 0, fmt.Errorf("next event sequence: %w", err)
	}

	data, err := json.Marshal(LoggedEvent{Seq: seq, InteractionEvent: *event})
	if err != nil {
		return 0, fmt.Errorf("marshal event: %w", err)
	}

	err = l.db.Update(func(txn *badger.Txn) error {
		return txn.Set(eventKey(seq), data)
	})
	metrics.RecordStoreOperation("interactions", "append", time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("store event: %w", err)
	}
	return seq, nil
}

// ListSince returns up to limit events with sequence >= offset, in log
// order, along with the offset to resume from next time.
func (l *InteractionLog) ListSince(ctx context.Context, offset uint64, limit int) ([]LoggedEvent, uint64, error) {
	start := time.Now()
	next := offset
	var events []LoggedEvent

	err := l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(eventKeyPrefix)
		for it.Seek(eventKey(offset)); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(events) >= limit {
				break
			}
			var event LoggedEvent
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &event)
			})
			if err != nil {
				return fmt.Errorf("unmarshal event: %w", err)
			}
			events = append(events, event)
			next = event.Seq + 1
		}
		return nil
	})
	metrics.RecordStoreOperation("interactions", "list", time.Since(start), err)
	if err != nil {
		return nil, offset, err
	}
	return events, next, nil
}

// ListUser returns up to limit most recent events for one user, newest
// first.
func (l *InteractionLog) ListUser(ctx context.Context, userID string, limit int) ([]LoggedEvent, error) {
	var events []LoggedEvent

	err := l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(eventKeyPrefix)
		// 0xff sorts the seek position after every event key
		for it.Seek(append([]byte(eventKeyPrefix), 0xff)); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(events) >= limit {
				break
			}
			var event LoggedEvent
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &event)
			})
			if err != nil {
				return fmt.Errorf("unmarshal event: %w", err)
			}
			if event.UserID == userID {
				events = append(events, event)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

// Offset returns the named consumer's resume position, 0 when unset.
func (l *InteractionLog) Offset(ctx context.Context, consumer string) (uint64, error) {
	var offset uint64
	err := l.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(offsetKeyPrefix + consumer))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			parsed, err := strconv.ParseUint(string(val), 10, 64)
			if err != nil {
				return fmt.Errorf("corrupt offset for %s: %w", consumer, err)
			}
			offset = parsed
			return nil
		})
	})
	if err != nil {
		return 0, fmt.Errorf("read offset %s: %w", consumer, err)
	}
	return offset, nil
}

// SetOffset persists the named consumer's resume position.
func (l *InteractionLog) SetOffset(ctx context.Context, consumer string, offset uint64) error {
	err := l.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(offsetKeyPrefix+consumer), []byte(strconv.FormatUint(offset, 10)))
	})
	if err != nil {
		return fmt.Errorf("write offset %s: %w", consumer, err)
	}
	return nil
}

// Close releases unused leased sequence numbers.
func (l *InteractionLog) Close() error {
	return l.seq.Release()
}

// eventKey encodes a sequence number so lexicographic and numeric order
// agree.
func eventKey(seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", eventKeyPrefix, seq))
}
