package service

import (
	"context"
	"log"
	"strings"

	"anvi/internal/config"
	"anvi/internal/memory"
	"anvi/internal/model"
	"anvi/internal/utils"
)

// Catalog is the external place catalog consulted for retrieval
type Catalog interface {
	SearchPlaces(ctx context.Context, category string, intent *model.Intent, limit int) ([]model.Place, error)
	ResolvePlaceByName(ctx context.Context, name string) (*model.Place, error)
}

// MessageStore is the durable per-user conversation log
type MessageStore interface {
	SaveMessage(ctx context.Context, userID, role, content string) error
	RecentMessages(ctx context.Context, userID string, limit int) ([]model.Message, error)
}

// AskService routes a query through the short-circuit gate, the intent
// classifier, and either the single-entity bypass or full retrieval plus
// generation.
type AskService struct {
	catalog   Catalog
	store     MessageStore
	generator Generator
	sessions  *memory.SessionCache
	retrieval config.RetrievalConfig
	history   int
	cdnBase   string
}

// NewAskService creates a new ask service
func NewAskService(
	catalog Catalog,
	store MessageStore,
	generator Generator,
	sessions *memory.SessionCache,
	retrieval config.RetrievalConfig,
	historyLimit int,
	cdnBase string,
) *AskService {
	return &AskService{
		catalog:   catalog,
		store:     store,
		generator: generator,
		sessions:  sessions,
		retrieval: retrieval,
		history:   historyLimit,
		cdnBase:   cdnBase,
	}
}

// Ask handles one query for an authenticated user. The steps run in a fixed
// sequence: store user turn, short-circuit check, classify, entity bypass,
// retrieve context, read history, generate, build cards, store assistant
// turn. There is no transaction across the two message writes; a crash in
// between leaves a dangling user turn.
func (s *AskService) Ask(ctx context.Context, userID, sessionID, query string) (*model.AskResponse, error) {
	query = strings.TrimSpace(query)

	if err := s.store.SaveMessage(ctx, userID, model.RoleUser, query); err != nil {
		return nil, err
	}
	s.remember(sessionID, model.RoleUser, query)

	// ---- conversational short-circuit ----
	if IsConversational(query) {
		if err := s.store.SaveMessage(ctx, userID, model.RoleAssistant, Greeting); err != nil {
			return nil, err
		}
		s.remember(sessionID, model.RoleAssistant, Greeting)
		return &model.AskResponse{Answer: Greeting, Cards: []model.Card{}}, nil
	}

	// ---- intent ----
	intent := ExtractIntent(query)

	// ---- entity + attribute bypass ----
	if intent.Type == model.IntentEntityLookup {
		if attribute, ok := DetectAttribute(query); ok {
			place, err := s.catalog.ResolvePlaceByName(ctx, utils.NormalizeName(intent.EntityName))
			if err != nil {
				return nil, err
			}
			if place != nil {
				answer := FormatAttributeAnswer(place, attribute)
				if err := s.store.SaveMessage(ctx, userID, model.RoleAssistant, answer); err != nil {
					return nil, err
				}
				s.remember(sessionID, model.RoleAssistant, answer)
				return &model.AskResponse{Answer: answer, Cards: []model.Card{}}, nil
			}
			// unresolved entity falls through to the full retrieval path
		}
	}

	// ---- retrieval context ----
	contextPlaces, err := s.catalog.SearchPlaces(ctx, intent.Category, &intent, s.retrieval.ContextFetchLimit)
	if err != nil {
		return nil, err
	}
	contextBlock := FormatContext(contextPlaces, s.retrieval.ContextKeep)
	if contextBlock == "" {
		log.Printf("[DEBUG] no catalog records for category %q | session=%s", intent.Category, sessionID)
	}

	// ---- durable history ----
	history, err := s.store.RecentMessages(ctx, userID, s.history)
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, m := range history {
		lines = append(lines, m.Role+": "+m.Content)
	}
	memoryBlock := strings.Join(lines, "\n")

	// ---- generation (empty context short-circuits inside) ----
	answer := s.generator.Answer(ctx, query, contextBlock, memoryBlock)

	// ---- cards ----
	cardPlaces, err := s.catalog.SearchPlaces(ctx, intent.Category, &intent, s.retrieval.CardFetchLimit)
	if err != nil {
		return nil, err
	}
	cards := BuildCards(cardPlaces, s.retrieval.CardKeep, s.cdnBase)

	if err := s.store.SaveMessage(ctx, userID, model.RoleAssistant, answer); err != nil {
		return nil, err
	}
	s.remember(sessionID, model.RoleAssistant, answer)

	return &model.AskResponse{Answer: answer, Cards: cards}, nil
}

// remember mirrors a turn into the short-term session cache when the caller
// supplied a session identifier. The durable log stays the source of truth
// for generation.
func (s *AskService) remember(sessionID, role, content string) {
	if s.sessions == nil || sessionID == "" {
		return
	}
	s.sessions.Add(sessionID, role, content)
}
