// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

package models

import (
	"time"
)

// CompanySize classifies the profile owner's company by headcount band.
type CompanySize string

// Company size bands.
const (
	SizeMicro CompanySize = "tpe" // très petite entreprise
	SizeSmall CompanySize = "pme" // petite et moyenne entreprise
	SizeLarge CompanySize = "ge"  // grande entreprise
)

// Valid reports whether the value is a known company size.
func (s CompanySize) Valid() bool {
	switch s {
	case SizeMicro, SizeSmall, SizeLarge:
		return true
	}
	return false
}

// InterventionRadius expresses how far from its preferred cities a company
// is willing to operate.
type InterventionRadius string

// Intervention radius tiers, ordered from narrowest to widest.
const (
	RadiusLocal         InterventionRadius = "local"
	RadiusRegional      InterventionRadius = "regional"
	RadiusNational      InterventionRadius = "national"
	RadiusInternational InterventionRadius = "international"
)

// Valid reports whether the value is a known radius tier.
func (r InterventionRadius) Valid() bool {
	switch r {
	case RadiusLocal, RadiusRegional, RadiusNational, RadiusInternational:
		return true
	}
	return false
}

// DelayPreference expresses the submission window a company prefers.
type DelayPreference string

// Delay preferences over the days remaining before a tender's deadline.
const (
	DelayShort  DelayPreference = "court" // up to ~30 days
	DelayMedium DelayPreference = "moyen" // 30 to 90 days
	DelayLong   DelayPreference = "long"  // beyond 90 days
	DelayAny    DelayPreference = "tous"
)

// Valid reports whether the value is a known delay preference.
func (d DelayPreference) Valid() bool {
	switch d {
	case DelayShort, DelayMedium, DelayLong, DelayAny:
		return true
	}
	return false
}

// UserProfile describes a company's procurement preferences. It is the left
// operand of every scoring operation: each criterion scorer reads a slice of
// these fields against a Tender.
//
// Optional numeric bounds use pointers; nil means unconstrained.
type UserProfile struct {
	UserID      string `json:"user_id" koanf:"user_id" validate:"required"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	CompanyName string `json:"company_name,omitempty"`

	// Sectors the company operates in. Empty means undeclared; the sector
	// criterion then scores neutral.
	Sectors     []string    `json:"sectors,omitempty"`
	CompanySize CompanySize `json:"company_size,omitempty" validate:"omitempty,oneof=tpe pme ge"`

	// Geographic preferences.
	PreferredCities []string           `json:"preferred_cities,omitempty"`
	Radius          InterventionRadius `json:"radius,omitempty" validate:"omitempty,oneof=local regional national international"`

	// Financial capacity. Amounts in MAD.
	BudgetMin  *float64 `json:"budget_min,omitempty" validate:"omitempty,gte=0"`
	BudgetMax  *float64 `json:"budget_max,omitempty" validate:"omitempty,gte=0"`
	CautionMax *float64 `json:"caution_max,omitempty" validate:"omitempty,gte=0"`

	DelayPreference DelayPreference `json:"delay_preference,omitempty" validate:"omitempty,oneof=court moyen long tous"`

	// Trade keywords and classification preferences.
	Keywords                 []string `json:"keywords,omitempty"`
	PreferredClassifications []string `json:"preferred_classifications,omitempty"`

	// Hard exclusions. A tender matching either list is forced to zero.
	ExcludedSectors []string `json:"excluded_sectors,omitempty"`
	ExcludedCities  []string `json:"excluded_cities,omitempty"`

	Complete  bool      `json:"complete"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// profileRequiredFields are the fields a profile must populate to be
// considered complete enough for personalized recommendations.
var profileRequiredFields = []string{
	"company_name",
	"sectors",
	"preferred_cities",
	"keywords",
}

// MissingFields returns the names of required fields the profile has not
// populated yet. An empty result means the profile is complete.
func (p *UserProfile) MissingFields() []string {
	var missing []string
	for _, field := range profileRequiredFields {
		switch field {
		case "company_name":
			if p.CompanyName == "" {
				missing = append(missing, field)
			}
		case "sectors":
			if len(p.Sectors) == 0 {
				missing = append(missing, field)
			}
		case "preferred_cities":
			if len(p.PreferredCities) == 0 {
				missing = append(missing, field)
			}
		case "keywords":
			if len(p.Keywords) == 0 {
				missing = append(missing, field)
			}
		}
	}
	return missing
}

// RecomputeCompleteness refreshes the Complete flag from the required
// fields. Called on every profile upsert.
func (p *UserProfile) RecomputeCompleteness() {
	p.Complete = len(p.MissingFields()) == 0
}

// BudgetRangeValid reports whether the declared budget bounds are coherent.
// Nil bounds are always coherent.
func (p *UserProfile) BudgetRangeValid() bool {
	if p.BudgetMin == nil || p.BudgetMax == nil {
		return true
	}
	return *p.BudgetMin <= *p.BudgetMax
}
