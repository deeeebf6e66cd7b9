package handler

import (
	"net/http"
	"strconv"

	"stablecoin-scout/internal/provider"

	"github.com/gin-gonic/gin"
)

// GetNews godoc
// @Summary      Get recent stablecoin news
// @Description  Returns up to 6 recent articles; an empty result is a 200 with an empty list
// @Tags         news
// @Produce      json
// @Param        q      query  string  false  "Search query"  default(stablecoin news)
// @Param        limit  query  int     false  "Max articles (1-6)"  default(6)
// @Success      200  {object}  domain.ComposedResponse
// @Failure      500  {object}  map[string]string
// @Router       /api/news [get]
func (h *Handler) GetNews(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-news")
	defer span.End()

	query := c.DefaultQuery("q", "stablecoin news")

	limit := provider.MaxNewsItems
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n < limit {
			limit = n
		}
	}

	resp, err := h.research.NewsFor(ctx, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(resp.NewsItems) > limit {
		resp.NewsItems = resp.NewsItems[:limit]
	}

	c.JSON(http.StatusOK, resp)
}
