package research

import (
	"context"
	"log"

	"stablecoin-scout/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Service is the single entry point for research queries: classify, extract,
// compose. Stateless across requests; every QueryContext lives and dies with
// its request.
type Service struct {
	tracer   trace.Tracer
	composer *Composer
}

func NewService(tracer trace.Tracer, composer *Composer) *Service {
	return &Service{tracer: tracer, composer: composer}
}

// ProcessQuery answers one free-text question. Intents whose symbol
// requirements are not met degrade to Generic before any provider call is
// made, so a malformed comparison still gets an answer instead of an error.
func (s *Service) ProcessQuery(ctx context.Context, text string) (*domain.ComposedResponse, error) {
	ctx, span := s.tracer.Start(ctx, "research.process-query")
	defer span.End()

	intent := Classify(text)
	symbols := ExtractSymbols(text)
	intent = degrade(intent, symbols)

	span.SetAttributes(
		attribute.String("intent", string(intent)),
		attribute.Int("symbol_count", len(symbols)),
	)
	log.Printf("research query intent=%s symbols=%v", intent, symbols)

	return s.composer.Compose(ctx, domain.QueryContext{
		RawText: text,
		Intent:  intent,
		Symbols: symbols,
	})
}

// AdoptionFor serves the direct adoption endpoint, bypassing classification.
func (s *Service) AdoptionFor(ctx context.Context, symbol string) (*domain.ComposedResponse, error) {
	return s.composer.Compose(ctx, domain.QueryContext{
		Intent:  domain.IntentAdoption,
		Symbols: []string{symbol},
	})
}

// NewsFor serves the direct news endpoint, bypassing classification.
func (s *Service) NewsFor(ctx context.Context, query string) (*domain.ComposedResponse, error) {
	return s.composer.Compose(ctx, domain.QueryContext{
		RawText: query,
		Intent:  domain.IntentNews,
	})
}

// degrade enforces per-intent symbol requirements: Comparison needs two,
// Explanation and AdoptionTracking need one. Anything short falls back to
// Generic rather than failing the request.
func degrade(intent domain.Intent, symbols []string) domain.Intent {
	switch intent {
	case domain.IntentComparison:
		if len(symbols) < 2 {
			return domain.IntentGeneric
		}
	case domain.IntentExplanation, domain.IntentAdoption:
		if len(symbols) < 1 {
			return domain.IntentGeneric
		}
	}
	return intent
}
