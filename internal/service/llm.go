package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"anvi/internal/config"
)

// Fixed degraded-service answers. These are returned verbatim; generation
// failures never surface as request failures.
const (
	NoDataAnswer      = "No matching data found for your request. Please try a different search."
	UnavailableAnswer = "LLM is temporarily unavailable. Please try again."
)

const systemPrompt = `You are Anvi AI, a Nashik-based travel assistant.

STRICT RULES:
- Use ONLY the items provided in the CONTEXT.
- DO NOT hallucinate or invent places.
- Show ONLY the TOP 6-8 most relevant items.
- If a field is missing, write "Not provided".
- Format cleanly for mobile UI.
- End with ONE short follow-up question.`

// Generator produces a grounded natural-language answer for a query
type Generator interface {
	Answer(ctx context.Context, query, contextBlock, memory string) string
}

// GroqClient handles Groq's OpenAI-compatible chat completions API
type GroqClient struct {
	config     *config.GroqConfig
	httpClient *http.Client
}

// NewGroqClient creates a new Groq client
func NewGroqClient(cfg *config.GroqConfig) *GroqClient {
	return &GroqClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// IsEnabled returns whether the client is configured and ready
func (c *GroqClient) IsEnabled() bool {
	return c.config.Enabled
}

// ChatCompletionRequest represents a chat completion request
type ChatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	TopP        float64       `json:"top_p,omitempty"`
}

// ChatMessage represents a single message in the conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionResponse represents the API response
type ChatCompletionResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int         `json:"index"`
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// ChatCompletion performs a chat completion request
func (c *GroqClient) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	if !c.config.Enabled {
		return nil, fmt.Errorf("Groq API is not enabled (missing API key)")
	}

	if req.Model == "" {
		req.Model = c.config.ChatModel
	}
	if req.Temperature == 0 && c.config.Temperature > 0 {
		req.Temperature = c.config.Temperature
	}
	if req.TopP == 0 && c.config.TopP > 0 {
		req.TopP = c.config.TopP
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", c.config.APIBase)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.APIKey))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &result, nil
}

// Answer generates a grounded answer for the query. The empty-context check
// runs before any network call: without grounding data the model is never
// invoked and the fixed no-data answer is returned. Any provider failure is
// swallowed into the fixed unavailable answer.
func (c *GroqClient) Answer(ctx context.Context, query, contextBlock, memory string) string {
	if strings.TrimSpace(contextBlock) == "" {
		return NoDataAnswer
	}

	userMsg := fmt.Sprintf(
		"PREVIOUS CONVERSATION:\n%s\n\nUSER QUERY:\n%s\n\nCONTEXT:\n%s",
		memory, query, contextBlock,
	)

	resp, err := c.ChatCompletion(ctx, ChatCompletionRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMsg},
		},
	})
	if err != nil {
		log.Printf("[ERROR] Groq failure: %v", err)
		return UnavailableAnswer
	}

	if len(resp.Choices) == 0 {
		log.Printf("[ERROR] Groq returned no choices")
		return UnavailableAnswer
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content)
}

// Ensure GroqClient implements Generator
var _ Generator = (*GroqClient)(nil)
