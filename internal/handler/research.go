package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type researchRequest struct {
	Query string `json:"query" binding:"required"`
}

// ProcessResearchQuery godoc
// @Summary      Answer a free-text stablecoin research question
// @Description  Classifies the query, extracts symbols, and composes an answer from market data, news, and AI analysis
// @Tags         research
// @Accept       json
// @Produce      json
// @Param        request  body  researchRequest  true  "Research query"
// @Success      200  {object}  domain.ComposedResponse
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/research/query [post]
func (h *Handler) ProcessResearchQuery(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.research-query")
	defer span.End()

	var req researchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}
	span.SetAttributes(attribute.Int("query.length", len(query)))

	resp, err := h.research.ProcessQuery(ctx, query)
	if err != nil {
		log.Printf("research query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "research temporarily unavailable"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
