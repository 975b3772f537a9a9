package handler

import (
	"net/http"

	"anvi/internal/model"
	"anvi/internal/repository"

	"github.com/gin-gonic/gin"
)

// EmbeddingHandler handles embedding-related HTTP requests. Embeddings are
// computed by the offline indexing pipeline and pushed here in batches.
type EmbeddingHandler struct {
	repo *repository.PostgresRepository
}

// NewEmbeddingHandler creates a new embedding handler
func NewEmbeddingHandler(repo *repository.PostgresRepository) *EmbeddingHandler {
	return &EmbeddingHandler{repo: repo}
}

// BatchUpdate handles POST /api/v1/embeddings/batch
func (h *EmbeddingHandler) BatchUpdate(c *gin.Context) {
	var req model.EmbeddingBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if len(req.Embeddings) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No embeddings provided"})
		return
	}

	success, errors := h.repo.BatchUpdateEmbeddings(c.Request.Context(), req.Embeddings)

	response := model.EmbeddingBatchResponse{
		Success: success,
		Failed:  len(req.Embeddings) - success,
		Errors:  errors,
	}

	c.JSON(http.StatusOK, response)
}
