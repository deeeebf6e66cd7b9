package handler

import (
	"context"

	"stablecoin-scout/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// ResearchService answers free-text and direct research requests.
type ResearchService interface {
	ProcessQuery(ctx context.Context, text string) (*domain.ComposedResponse, error)
	AdoptionFor(ctx context.Context, symbol string) (*domain.ComposedResponse, error)
	NewsFor(ctx context.Context, query string) (*domain.ComposedResponse, error)
}

// LeadStore persists contact leads. Nil when the database is not configured.
type LeadStore interface {
	CreateLead(ctx context.Context, lead *domain.Lead) (*domain.Lead, error)
	ListLeads(ctx context.Context, limit int) ([]domain.Lead, error)
}

type Handler struct {
	tracer        trace.Tracer
	research      ResearchService
	leads         LeadStore
	apiKey        string
	leadListLimit int
}

func New(tracer trace.Tracer, research ResearchService, leads LeadStore, apiKey string, leadListLimit int) *Handler {
	return &Handler{
		tracer:        tracer,
		research:      research,
		leads:         leads,
		apiKey:        apiKey,
		leadListLimit: leadListLimit,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.POST("/api/research/query", h.ProcessResearchQuery)
	r.GET("/api/stablecoins", h.ListStablecoins)
	r.GET("/api/stablecoins/:symbol", h.GetStablecoin)
	r.GET("/api/adoption/:symbol", h.GetAdoption)
	r.GET("/api/news", h.GetNews)
	r.POST("/api/leads", h.CreateLead)
	r.GET("/api/leads", APIKeyAuth(h.apiKey), h.ListLeads)
}
