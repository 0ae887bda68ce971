// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

// Package models defines the shared data structures exchanged between the
// API layer, the recommendation engine, and the persistence layer: user
// profiles, tenders, interaction events, and the standard API response
// envelope.
//
// Models carry validation tags consumed by internal/validation; business
// rules beyond field shape (scoring, weighting) live in internal/recommend.
package models
