package service

import (
	"strings"

	"anvi/internal/model"
	"anvi/internal/utils"
)

// attributeEntry pairs an attribute key with its surface keywords. The table
// is a slice, not a map: scan order is the tie-break rule, first hit wins.
type attributeEntry struct {
	key      string
	keywords []string
}

var attributeTable = []attributeEntry{
	{"rating", []string{"rating", "stars", "star"}},
	{"address", []string{"address", "where"}},
	{"phone", []string{"phone", "contact", "number"}},
	{"amenities", []string{"amenities", "facilities", "features"}},
	{"parking", []string{"parking"}},
	{"pet_friendly", []string{"pet", "pets", "pet-friendly"}},
	{"price", []string{"price", "cost", "tariff", "rate", "rates"}},
	{"map", []string{"map", "directions", "location"}},
	{"vendor_name", []string{"vendor_name", "vendor", "vendor name", "vendor's name"}},
	{"wifi", []string{"wifi", "wi-fi", "internet"}},
	{"pool", []string{"pool", "swimming"}},
	{"bonfire", []string{"bonfire"}},
	{"google_location", []string{"google_location"}},
	{"website", []string{"website", "site", "url"}},
	{"kitchen_available", []string{"kitchen"}},
	{"food_available", []string{"food"}},
	{"taxes_included", []string{"tax", "taxes", "tax included"}},
	{"price_unit", []string{"price_unit", "unit"}},
	{"cancellation", []string{"cancellation", "cancel"}},
	{"air_conditioned", []string{"ac", "air conditioned", "air-conditioning", "air conditioning"}},
}

// stopwords removed from entity-name token extraction: generic question
// words, attribute surface forms, and "hotel" itself.
var entityStopwords = map[string]bool{
	"what": true, "is": true, "the": true, "of": true, "tell": true,
	"me": true, "about": true,
	"rating": true, "price": true, "address": true, "amenities": true,
	"phone": true, "location": true, "where": true, "map": true,
	"directions": true,
	"hotel": true, "does": true, "do": true, "have": true, "has": true,
	"a": true, "an": true,
	"what's": true, "show": true, "find": true, "something": true,
	"wifi": true, "wi-fi": true, "internet": true, "pool": true,
	"swimming": true, "bonfire": true,
	"website": true, "site": true, "url": true, "kitchen": true, "food": true,
	"tax": true, "taxes": true, "cancellation": true, "cancel": true,
	"unit": true,
}

// lead-in phrases that mark a query as asking about one specific place
var entityPatterns = []string{
	"tell me about",
	"tell me something about",
	"what is",
	"what's",
	"show me",
	"find",
}

// DetectAttribute maps a query to at most one known attribute key via keyword
// containment. The table is scanned in declaration order and the first
// attribute with any matching keyword wins. Returns false when no keyword
// matches. Pure function of the input text.
func DetectAttribute(query string) (string, bool) {
	for _, entry := range attributeTable {
		if utils.ContainsAny(query, entry.keywords...) {
			return entry.key, true
		}
	}
	return "", false
}

// ExtractIntent classifies a free-text query into a search intent. It never
// fails: any input, including the empty string, yields a complete Intent
// (defaults: hotel / generic_search).
func ExtractIntent(query string) model.Intent {
	q := strings.ToLower(query)

	intent := model.Intent{
		Category: model.CategoryHotel,
		Type:     model.IntentGenericSearch,
		MustHave: []string{},
	}

	// ---- category detection ----
	if strings.Contains(q, "villa") {
		intent.Category = model.CategoryVilla
	}

	// ---- filters ----
	// "pool" is the only filter that forces filtered_search; later steps may
	// still override the type.
	if strings.Contains(q, "pool") {
		intent.Type = model.IntentFilteredSearch
		intent.MustHave = append(intent.MustHave, "pool")
	}
	if strings.Contains(q, "family") {
		intent.MustHave = append(intent.MustHave, "family")
	}
	if strings.Contains(q, "couple") {
		intent.MustHave = append(intent.MustHave, "couple")
	}
	if strings.Contains(q, "luxury") {
		intent.MustHave = append(intent.MustHave, "luxury")
	}
	if strings.Contains(q, "budget") || strings.Contains(q, "cheap") {
		intent.MustHave = append(intent.MustHave, "budget")
	}

	// ---- entity lookup ----
	isEntityQuery := false
	for _, pattern := range entityPatterns {
		if strings.Contains(q, pattern) {
			isEntityQuery = true
			break
		}
	}

	// Fallback: "hotel" plus an attribute keyword also reads as an entity query
	if !isEntityQuery {
		if _, hasAttr := DetectAttribute(query); hasAttr && strings.Contains(q, "hotel") {
			isEntityQuery = true
		}
	}

	// Token-based entity name extraction (avoids string corruption)
	extractedName := ""
	if isEntityQuery {
		if tokens := utils.TokensWithout(q, entityStopwords); len(tokens) > 0 {
			intent.Type = model.IntentEntityLookup
			extractedName = strings.Join(tokens, " ")
			intent.EntityName = extractedName
		}
	}

	// ---- final override: attribute + nameable entity always routes to the
	// single-entity bypass, even when the lead-in patterns missed it ----
	if _, hasAttr := DetectAttribute(query); hasAttr {
		if extractedName != "" {
			intent.Type = model.IntentEntityLookup
			intent.EntityName = extractedName
		} else if tokens := utils.TokensWithout(q, entityStopwords); len(tokens) > 0 {
			intent.Type = model.IntentEntityLookup
			intent.EntityName = strings.Join(tokens, " ")
		}
	}

	intent.Keywords = intent.MustHave
	return intent
}
