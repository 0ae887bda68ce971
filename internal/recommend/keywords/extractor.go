// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

// Package keywords normalizes free text from tender notices and user
// profiles into comparable token sets, and suggests trade keywords per
// business sector.
//
// Normalization lower-cases, folds diacritics (béton -> beton), strips
// punctuation and drops French/procurement stop words, so that the keyword
// criterion compares what the notice is about rather than how it is written.
package keywords

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultMinTokenLength drops tokens shorter than this during extraction.
const DefaultMinTokenLength = 3

// maxExtracted caps the tokens returned by Extract, keeping the most
// frequent ones.
const maxExtracted = 20

// foldTransformer strips combining marks after canonical decomposition,
// turning accented characters into their ASCII base.
var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Extractor turns free text into normalized token sets.
// The zero value is not usable; construct with NewExtractor.
type Extractor struct {
	minTokenLength int
	stopWords      map[string]struct{}
}

// NewExtractor builds an extractor. minTokenLength <= 0 selects the default.
func NewExtractor(minTokenLength int) *Extractor {
	if minTokenLength <= 0 {
		minTokenLength = DefaultMinTokenLength
	}

	stop := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		stop[Fold(w)] = struct{}{}
	}

	return &Extractor{
		minTokenLength: minTokenLength,
		stopWords:      stop,
	}
}

// Fold lower-cases s and strips diacritics. Deterministic and side-effect
// free; safe for concurrent use.
func Fold(s string) string {
	folded, _, err := transform.String(foldTransformer, strings.ToLower(s))
	if err != nil {
		// The transform chain cannot fail on valid UTF-8; fall back to the
		// lower-cased input for anything else.
		return strings.ToLower(s)
	}
	return folded
}

// TokenSet extracts the normalized significant tokens of text as a set.
// Empty or all-noise input yields an empty set, never an error.
func (e *Extractor) TokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range e.tokenize(text) {
		set[tok] = struct{}{}
	}
	return set
}

// Extract returns the most frequent significant tokens of text, capped at
// 20, ordered by descending frequency then alphabetically. Used by the
// suggestion surface; scoring uses TokenSet.
func (e *Extractor) Extract(text string) []string {
	counts := make(map[string]int)
	for _, tok := range e.tokenize(text) {
		counts[tok]++
	}
	if len(counts) == 0 {
		return nil
	}

	tokens := make([]string, 0, len(counts))
	for tok := range counts {
		tokens = append(tokens, tok)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if counts[tokens[i]] != counts[tokens[j]] {
			return counts[tokens[i]] > counts[tokens[j]]
		}
		return tokens[i] < tokens[j]
	})

	if len(tokens) > maxExtracted {
		tokens = tokens[:maxExtracted]
	}
	return tokens
}

// tokenize folds, strips punctuation, splits and filters the text.
func (e *Extractor) tokenize(text string) []string {
	if text == "" {
		return nil
	}

	folded := Fold(text)
	fields := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var tokens []string
	for _, f := range fields {
		if len([]rune(f)) < e.minTokenLength {
			continue
		}
		if _, stop := e.stopWords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// Recall returns |profile ∩ tender| / |profile|. An empty profile set
// yields 0; callers treat that case upstream.
func Recall(profile, tender map[string]struct{}) float64 {
	if len(profile) == 0 {
		return 0
	}
	return float64(intersectionSize(profile, tender)) / float64(len(profile))
}

// Jaccard returns |profile ∩ tender| / |profile ∪ tender|.
// Two empty sets yield 0.
func Jaccard(profile, tender map[string]struct{}) float64 {
	inter := intersectionSize(profile, tender)
	union := len(profile) + len(tender) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func intersectionSize(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}
