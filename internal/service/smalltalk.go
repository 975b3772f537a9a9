package service

import (
	"strings"

	"anvi/internal/utils"
)

// Greeting is the fixed answer for conversational queries; it skips
// classification, retrieval, and generation entirely.
const Greeting = "Hey! 👋 I'm Anvi, I can help you with hotel searches, place details, " +
	"and travel-related questions based on our available data.\n\n" +
	"Just tell me what you're looking for 🙂"

// maxConversationalTokens caps how long a query can be and still count as
// small talk.
const maxConversationalTokens = 8

var conversationalKeywords = []string{
	"hi", "hello", "hey",
	"good morning", "good evening", "good afternoon",
	"what can you help me with", "what can you do",
	"how can you help me", "what do you do",
}

// Any domain keyword vetoes the short-circuit, no matter how the query opens.
var domainKeywords = []string{
	"hotel", "hotels", "stay", "resort", "villa",
	"price", "budget", "luxury", "rating", "address",
	"amenities", "location", "near", "in",
}

// IsConversational reports whether a query is greeting/small talk that should
// bypass intent classification: it must contain a small-talk phrase, contain
// no domain keyword, and be at most 8 whitespace tokens long.
func IsConversational(query string) bool {
	q := strings.ToLower(query)
	return utils.ContainsAny(q, conversationalKeywords...) &&
		!utils.ContainsAny(q, domainKeywords...) &&
		len(strings.Fields(q)) <= maxConversationalTokens
}
