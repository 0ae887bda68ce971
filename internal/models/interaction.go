// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

package models

import (
	"time"
)

// EventKind classifies a user interaction with a tender.
type EventKind string

// Interaction kinds, from weakest to strongest signal.
const (
	EventView     EventKind = "view"
	EventClick    EventKind = "click"
	EventFavorite EventKind = "favorite"
	EventApply    EventKind = "apply"
	EventDismiss  EventKind = "dismiss"
)

// Valid reports whether the value is a known event kind.
func (k EventKind) Valid() bool {
	switch k {
	case EventView, EventClick, EventFavorite, EventApply, EventDismiss:
		return true
	}
	return false
}

// Positive reports whether the kind expresses interest in the tender.
func (k EventKind) Positive() bool {
	switch k {
	case EventClick, EventFavorite, EventApply:
		return true
	}
	return false
}

// Adjusts reports whether the kind carries enough signal to move weights.
// Views are recorded for engagement statistics but stay weight-neutral.
func (k EventKind) Adjusts() bool {
	return k != EventView && k.Valid()
}

// InteractionEvent records one user action on one tender. Events are
// appended to the interaction log and later drained by the learning service
// to adjust the user's personalized criterion weights.
type InteractionEvent struct {
	ID        string    `json:"id,omitempty"`
	UserID    string    `json:"user_id" validate:"required"`
	TenderID  string    `json:"tender_id" validate:"required"`
	Kind      EventKind `json:"kind" validate:"required,oneof=view click favorite apply dismiss"`
	Timestamp time.Time `json:"timestamp,omitempty"`

	// DwellSeconds is how long the tender detail stayed open, when the
	// client reports it. Informational only.
	DwellSeconds int `json:"dwell_seconds,omitempty" validate:"omitempty,gte=0"`
}

// EngagementStats summarizes a user's recorded interactions.
type EngagementStats struct {
	UserID    string            `json:"user_id"`
	Total     int               `json:"total"`
	ByKind    map[EventKind]int `json:"by_kind"`
	LastEvent time.Time         `json:"last_event,omitempty"`
}
