package model

// AskRequest represents an incoming query
type AskRequest struct {
	Query     string `json:"query" binding:"required"`
	SessionID string `json:"session_id,omitempty"`
}

// AskResponse is the answer plus structured result cards
type AskResponse struct {
	Answer string `json:"answer"`
	Cards  []Card `json:"cards"`
}

// Card is a single ranked result projected for the mobile UI
type Card struct {
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle"`
	Rating      *float64 `json:"rating"`
	Address     string   `json:"address"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
}

// EmbeddingBatchRequest represents a batch embedding update request
type EmbeddingBatchRequest struct {
	Embeddings []EmbeddingItem `json:"embeddings" binding:"required"`
}

// EmbeddingItem carries one offline-computed embedding for a catalog place
type EmbeddingItem struct {
	PlaceID   int64     `json:"place_id" binding:"required"`
	Embedding []float32 `json:"embedding" binding:"required"`
}

// EmbeddingBatchResponse represents the response for batch embedding update
type EmbeddingBatchResponse struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}
