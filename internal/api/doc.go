// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

// Package api exposes the HTTP surface of the recommendation service.
//
// Routing is built on chi with the go-chi middleware ecosystem (cors,
// httprate). Every endpoint responds with the models.APIResponse envelope;
// request payloads are validated with go-playground/validator before any
// work happens.
package api
