// TenderMatch - Procurement Opportunity Recommendation Engine
// Copyright 2026 H. Zerouali (hzerouali)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hzerouali/tendermatch

package keywords

// stopWords lists tokens carrying no trade signal: French function words,
// procurement boilerplate found in nearly every notice, and common
// transliterated Arabic particles. Compared after folding.
var stopWords = []string{
	// French function words
	"le", "la", "les", "un", "une", "des", "du", "de", "et", "ou", "mais",
	"donc", "or", "ni", "car", "que", "qui", "quoi", "dont", "où", "ce",
	"se", "sa", "son", "ses", "leur", "leurs", "nous", "vous", "ils", "elles",
	"je", "tu", "il", "elle", "on", "dans", "sur", "avec", "par", "pour",
	"sans", "sous", "vers", "chez", "entre", "jusque", "depuis", "pendant",
	"avant", "après", "très", "plus", "moins", "aussi", "tout", "tous",
	"toute", "toutes", "autre", "autres", "même", "mêmes", "tel", "telle",
	"comme", "comment", "quand", "pourquoi", "combien", "est", "sont", "être",
	"avoir", "faire", "dire", "aller", "voir", "savoir", "pouvoir", "vouloir",
	"devoir", "falloir", "venir", "prendre", "donner", "mettre", "partir",
	"sortir", "passer", "rester", "tenir", "porter", "suivre", "vivre", "mourir",

	// Procurement boilerplate present in nearly every notice
	"selon", "concernant", "relative", "relatif", "conformément", "cadre",
	"objet", "référence", "numéro", "date", "délai", "montant", "prix",
	"coût", "budget", "offre", "demande", "appel", "marché", "public",
	"cahier", "charges", "technique", "administratif", "financier",

	// Transliterated Arabic particles
	"al", "el", "wa", "fi", "min", "ila", "an", "ma", "la", "li", "bi",
}
