// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

package keywords

import (
	"sort"
	"strings"
)

// sectorKeywords maps business sectors to their usual trade keywords on the
// Moroccan procurement market. Consumed by the suggestion endpoints; the
// scoring path never reads it.
var sectorKeywords = map[string][]string{
	"informatique": {
		"développement web", "application mobile", "base de données", "cybersécurité",
		"infrastructure réseau", "cloud computing", "intelligence artificielle", "blockchain",
		"ERP", "CRM", "système d'information", "maintenance informatique",
		"formation informatique", "audit informatique", "hébergement web",
		"logiciel de gestion", "e-commerce", "digitalisation", "transformation digitale",
	},
	"bâtiment": {
		"construction", "rénovation", "génie civil", "architecture", "maçonnerie",
		"plomberie", "électricité", "climatisation", "isolation thermique",
		"étanchéité", "carrelage", "peinture", "menuiserie", "charpente",
		"terrassement", "assainissement", "voirie", "béton armé", "infrastructure",
	},
	"transport": {
		"transport routier", "logistique", "livraison", "déménagement",
		"transport de marchandises", "transport de personnes", "affrètement",
		"entreposage", "supply chain", "douane", "transit", "fret",
		"transport international", "messagerie", "distribution",
	},
	"santé": {
		"équipement médical", "fournitures médicales", "imagerie médicale",
		"laboratoire", "pharmacie", "dispositifs médicaux", "stérilisation",
		"ambulance", "télémédecine", "dossier médical électronique",
		"maintenance médicale", "formation médicale", "hygiène hospitalière",
	},
	"éducation": {
		"formation professionnelle", "e-learning", "équipement scolaire",
		"mobilier scolaire", "fournitures scolaires", "laboratoire pédagogique",
		"bibliothèque", "cantine scolaire", "transport scolaire",
		"cours particuliers", "certification", "formation continue",
	},
	"agriculture": {
		"machinisme agricole", "irrigation", "semences", "engrais", "pesticides",
		"élevage", "arboriculture", "maraîchage", "céréaliculture",
		"transformation agroalimentaire", "certification bio", "conseil agricole",
		"vétérinaire", "équipement agricole",
	},
	"énergie": {
		"énergie solaire", "énergie éolienne", "électricité", "gaz naturel",
		"pétrole", "efficacité énergétique", "audit énergétique",
		"installation électrique", "maintenance énergétique", "smart grid",
		"biomasse", "géothermie", "hydrogène vert",
	},
	"tourisme": {
		"hôtellerie", "restauration", "agence de voyage", "guide touristique",
		"transport touristique", "animation", "événementiel", "traiteur",
		"réceptif", "écotourisme", "tourisme culturel", "hébergement",
	},
	"industrie": {
		"production industrielle", "maintenance industrielle", "contrôle qualité",
		"automation", "robotique", "mécanique de précision", "usinage",
		"soudure", "assemblage", "packaging", "logistique industrielle",
		"sécurité industrielle", "environnement industriel",
	},
	"finance": {
		"comptabilité", "audit financier", "conseil fiscal", "banque",
		"assurance", "crédit", "investissement", "gestion de patrimoine",
		"expertise comptable", "commissariat aux comptes", "financement",
		"microfinance", "trésorerie",
	},
	"communication": {
		"marketing digital", "publicité", "communication digitale", "réseaux sociaux",
		"création graphique", "impression", "événementiel", "relations presse",
		"stratégie de communication", "brand content", "web marketing",
		"référencement SEO", "community management",
	},
	"environnement": {
		"traitement des eaux", "gestion des déchets", "recyclage",
		"dépollution", "étude d'impact", "énergies renouvelables",
		"développement durable", "ISO 14001", "économie circulaire",
		"biodiversité", "changement climatique",
	},
	"sécurité": {
		"sécurité privée", "surveillance", "gardiennage", "système d'alarme",
		"vidéosurveillance", "contrôle d'accès", "sécurité incendie",
		"sécurité informatique", "audit sécurité", "formation sécurité",
		"transport de fonds", "protection rapprochée",
	},
	"textile": {
		"confection", "broderie", "impression textile", "maroquinerie",
		"chaussure", "mode", "design textile", "teinture", "tissage",
		"tricotage", "accessoires", "prêt-à-porter", "export textile",
	},
	"conseil": {
		"conseil en management", "formation professionnelle", "audit organisationnel",
		"accompagnement", "coaching", "stratégie d'entreprise", "ressources humaines",
		"optimisation des processus", "conduite du changement", "certification",
		"normalisation", "évaluation",
	},
}

// synonyms maps canonical keywords to their common variants, in both
// directions for lookup.
var synonyms = map[string][]string{
	"développement web":         {"dev web", "création web", "site web", "application web"},
	"intelligence artificielle": {"IA", "AI", "machine learning", "deep learning"},
	"cybersécurité":             {"sécurité informatique", "sécurité IT", "protection données"},
	"infrastructure réseau":     {"réseau informatique", "administration réseau"},
	"génie civil":               {"travaux publics", "BTP", "construction civile"},
	"transport routier":         {"transport terrestre", "routage"},
	"énergie solaire":           {"photovoltaïque", "solaire PV", "panneaux solaires"},
	"marketing digital":         {"marketing numérique", "webmarketing", "digital marketing"},
}

// genericKeywords are suggested when a sector matches nothing known.
var genericKeywords = []string{
	"fourniture", "installation", "maintenance", "formation", "conseil",
	"audit", "certification", "contrôle", "gestion", "développement",
	"création", "conception", "réalisation", "livraison", "support",
	"assistance", "expertise", "étude", "analyse", "optimisation",
}

// genericSuggestionLimit caps the fallback suggestion list.
const genericSuggestionLimit = 10

// AllSectors returns the known sector names, sorted.
func AllSectors() []string {
	sectors := make([]string, 0, len(sectorKeywords))
	for s := range sectorKeywords {
		sectors = append(sectors, s)
	}
	sort.Strings(sectors)
	return sectors
}

// SuggestForSector returns the trade keywords suggested for a sector.
// Lookup is fold-insensitive and falls back from exact to partial sector
// name match, then to keywords containing the queried term, then to the
// generic list.
func SuggestForSector(sector string) []string {
	query := Fold(strings.TrimSpace(sector))
	if query == "" {
		return append([]string(nil), genericKeywords[:genericSuggestionLimit]...)
	}

	// Exact sector name.
	for name, kws := range sectorKeywords {
		if Fold(name) == query {
			return append([]string(nil), kws...)
		}
	}

	// Partial sector name in either direction.
	for name, kws := range sectorKeywords {
		folded := Fold(name)
		if strings.Contains(folded, query) || strings.Contains(query, folded) {
			return append([]string(nil), kws...)
		}
	}

	// Keywords containing the queried term.
	seen := make(map[string]struct{})
	var matched []string
	for _, name := range AllSectors() {
		for _, kw := range sectorKeywords[name] {
			if strings.Contains(Fold(kw), query) {
				if _, dup := seen[kw]; !dup {
					seen[kw] = struct{}{}
					matched = append(matched, kw)
				}
			}
		}
	}
	if len(matched) > 0 {
		sort.Strings(matched)
		return matched
	}

	return append([]string(nil), genericKeywords[:genericSuggestionLimit]...)
}

// Related suggests keywords related to the given one: dictionary entries
// containing it, entries sharing a word with it, and its synonym group.
// Returns at most limit results, sorted.
func Related(keyword string, limit int) []string {
	if limit <= 0 {
		limit = genericSuggestionLimit
	}
	query := Fold(strings.TrimSpace(keyword))
	if query == "" {
		return nil
	}
	queryWords := fieldSet(query)

	suggestions := make(map[string]struct{})

	for _, name := range AllSectors() {
		for _, kw := range sectorKeywords[name] {
			folded := Fold(kw)
			if folded == query {
				continue
			}
			if strings.Contains(folded, query) {
				suggestions[kw] = struct{}{}
				continue
			}
			kwWords := fieldSet(folded)
			if len(kwWords) > 1 && intersectionSize(queryWords, kwWords) > 0 {
				suggestions[kw] = struct{}{}
			}
		}
	}

	for canonical, variants := range synonyms {
		foldedCanonical := Fold(canonical)
		if foldedCanonical == query {
			for _, v := range variants {
				suggestions[v] = struct{}{}
			}
			continue
		}
		for _, v := range variants {
			if Fold(v) == query {
				suggestions[canonical] = struct{}{}
				for _, other := range variants {
					if Fold(other) != query {
						suggestions[other] = struct{}{}
					}
				}
				break
			}
		}
	}

	out := make([]string, 0, len(suggestions))
	for s := range suggestions {
		out = append(out, s)
	}
	sort.Strings(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// MatchSectors scores how well a keyword list fits each known sector:
// exact dictionary hits count 1.0, substring hits 0.5, synonym hits 0.8.
// Scores are normalized to the best sector. Empty input yields an empty map.
func MatchSectors(keywordList []string) map[string]float64 {
	scores := make(map[string]float64)

	for _, raw := range keywordList {
		kw := Fold(strings.TrimSpace(raw))
		if kw == "" {
			continue
		}

		for sector, kws := range sectorKeywords {
			for _, candidate := range kws {
				folded := Fold(candidate)
				switch {
				case kw == folded:
					scores[sector] += 1.0
				case strings.Contains(folded, kw) || strings.Contains(kw, folded):
					scores[sector] += 0.5
				}
			}

			for canonical, variants := range synonyms {
				if !containsFolded(kws, canonical) {
					continue
				}
				for _, v := range variants {
					if kw == Fold(v) {
						scores[sector] += 0.8
					}
				}
			}
		}
	}

	if len(scores) == 0 {
		return scores
	}
	max := 0.0
	for _, v := range scores {
		if v > max {
			max = v
		}
	}
	for k := range scores {
		scores[k] /= max
	}
	return scores
}

func containsFolded(list []string, target string) bool {
	folded := Fold(target)
	for _, s := range list {
		if Fold(s) == folded {
			return true
		}
	}
	return false
}

func fieldSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, f := range strings.Fields(s) {
		set[f] = struct{}{}
	}
	return set
}
