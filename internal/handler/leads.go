package handler

import (
	"net/http"
	"strings"

	"stablecoin-scout/internal/domain"

	"github.com/gin-gonic/gin"
)

type leadRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Company  string `json:"company"`
	Interest string `json:"interest"`
}

// CreateLead godoc
// @Summary      Register a contact lead
// @Description  Stores a contact request; a duplicate email updates the existing lead
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        request  body  leadRequest  true  "Lead details"
// @Success      201  {object}  domain.Lead
// @Failure      400  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/leads [post]
func (h *Handler) CreateLead(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.create-lead")
	defer span.End()

	if h.leads == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "lead storage unavailable"})
		return
	}

	var req leadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and a valid email are required"})
		return
	}

	lead, err := h.leads.CreateLead(ctx, &domain.Lead{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Company:  strings.TrimSpace(req.Company),
		Interest: strings.TrimSpace(req.Interest),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, lead)
}

// ListLeads godoc
// @Summary      List stored leads
// @Description  Returns recent leads, newest first. Requires X-API-Key when configured.
// @Tags         leads
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/leads [get]
func (h *Handler) ListLeads(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.list-leads")
	defer span.End()

	if h.leads == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "lead storage unavailable"})
		return
	}

	leads, err := h.leads.ListLeads(ctx, h.leadListLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if leads == nil {
		leads = []domain.Lead{}
	}

	c.JSON(http.StatusOK, gin.H{"leads": leads})
}
