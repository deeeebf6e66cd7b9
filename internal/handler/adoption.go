package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetAdoption godoc
// @Summary      Get the adoption snapshot for a stablecoin
// @Description  Returns supply, market share, chain distribution, volume and depeg events; unknown symbols get indicative estimates
// @Tags         adoption
// @Produce      json
// @Param        symbol  path  string  true  "Stablecoin symbol (e.g., USDT, USDC)"
// @Success      200  {object}  domain.ComposedResponse
// @Failure      500  {object}  map[string]string
// @Router       /api/adoption/{symbol} [get]
func (h *Handler) GetAdoption(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-adoption")
	defer span.End()

	symbol := strings.ToUpper(c.Param("symbol"))
	span.SetAttributes(attribute.String("symbol", symbol))

	resp, err := h.research.AdoptionFor(ctx, symbol)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}
