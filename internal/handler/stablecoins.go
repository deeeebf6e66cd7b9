package handler

import (
	"net/http"
	"strings"

	"stablecoin-scout/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// ListStablecoins godoc
// @Summary      List the tracked stablecoin catalog
// @Description  Returns reference metadata for every tracked stablecoin
// @Tags         stablecoins
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/stablecoins [get]
func (h *Handler) ListStablecoins(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.list-stablecoins")
	defer span.End()

	coins := make([]domain.StablecoinRef, 0, len(domain.SupportedSymbols))
	for _, symbol := range domain.SupportedSymbols {
		coins = append(coins, domain.Catalog[symbol])
	}

	c.JSON(http.StatusOK, gin.H{"stablecoins": coins})
}

// GetStablecoin godoc
// @Summary      Get reference metadata for one stablecoin
// @Description  Returns catalog metadata for the given symbol or alias
// @Tags         stablecoins
// @Produce      json
// @Param        symbol  path  string  true  "Stablecoin symbol (e.g., USDT, USDC)"
// @Success      200  {object}  domain.StablecoinRef
// @Failure      404  {object}  map[string]string
// @Router       /api/stablecoins/{symbol} [get]
func (h *Handler) GetStablecoin(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-stablecoin")
	defer span.End()

	symbol := strings.ToUpper(c.Param("symbol"))
	span.SetAttributes(attribute.String("symbol", symbol))

	ref, ok := domain.LookupStablecoin(symbol)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error":             "unknown stablecoin: " + symbol,
			"supported_symbols": domain.SupportedSymbols,
		})
		return
	}

	c.JSON(http.StatusOK, ref)
}
