package model

// IntentType classifies how a query should be routed
type IntentType string

const (
	IntentGenericSearch  IntentType = "generic_search"
	IntentFilteredSearch IntentType = "filtered_search"
	IntentEntityLookup   IntentType = "entity_lookup"
)

// Catalog categories
const (
	CategoryHotel = "hotel"
	CategoryVilla = "villa"
)

// Intent represents the parsed intent from a natural language query.
// Built fresh per query and never mutated after return.
type Intent struct {
	Category   string     `json:"category"`
	Type       IntentType `json:"type"`
	MustHave   []string   `json:"must_have"`
	Keywords   []string   `json:"keywords"` // alias view of MustHave
	EntityName string     `json:"entity_name,omitempty"`
}
