package handler

import (
	"log"
	"net/http"
	"strings"

	"anvi/internal/model"
	"anvi/internal/service"

	"github.com/gin-gonic/gin"
)

// AskHandler handles the conversational query endpoint
type AskHandler struct {
	askService *service.AskService
}

// NewAskHandler creates a new ask handler
func NewAskHandler(askService *service.AskService) *AskHandler {
	return &AskHandler{askService: askService}
}

// Ask handles POST /api/v1/ask
func (h *AskHandler) Ask(c *gin.Context) {
	var req model.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query is required"})
		return
	}

	userID := c.GetString(userIDKey)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	sessionID := strings.TrimSpace(req.SessionID)
	log.Printf("[DEBUG] /ask → %s | session: %s", query, sessionID)

	response, err := h.askService.Ask(c.Request.Context(), userID, sessionID, query)
	if err != nil {
		// Everything past auth/validation degrades to an opaque failure;
		// no detail leaks to the caller.
		log.Printf("[ERROR] ask failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, response)
}
