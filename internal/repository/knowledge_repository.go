package repository

import (
	"context"
	"errors"
	"time"

	"stablecoin-scout/internal/domain"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/trace"
)

const createKnowledgeTable = `
CREATE TABLE IF NOT EXISTS knowledge_base (
    symbol      TEXT        PRIMARY KEY,
    text        TEXT        NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// KnowledgeRepository stores curated per-symbol explanations. The composer
// consults it before calling the chat provider.
type KnowledgeRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewKnowledgeRepository(pool PgxPool, tracer trace.Tracer) *KnowledgeRepository {
	return &KnowledgeRepository{pool: pool, tracer: tracer}
}

func (r *KnowledgeRepository) RunMigrations(ctx context.Context) error {
	_, span := r.tracer.Start(ctx, "knowledge-repo.run-migrations")
	defer span.End()

	_, err := r.pool.Exec(ctx, createKnowledgeTable)
	return err
}

// GetExplanation returns nil without error when no entry exists for the
// symbol.
func (r *KnowledgeRepository) GetExplanation(ctx context.Context, symbol string) (*domain.Explanation, error) {
	_, span := r.tracer.Start(ctx, "knowledge-repo.get-explanation")
	defer span.End()

	var (
		e  domain.Explanation
		ts time.Time
	)
	err := r.pool.QueryRow(ctx,
		`SELECT symbol, text, updated_at FROM knowledge_base WHERE symbol = $1`,
		symbol,
	).Scan(&e.Symbol, &e.Text, &ts)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	e.UpdatedAt = ts.UTC()
	return &e, nil
}

// UpsertExplanation replaces the stored text for a symbol.
func (r *KnowledgeRepository) UpsertExplanation(ctx context.Context, symbol, text string) error {
	_, span := r.tracer.Start(ctx, "knowledge-repo.upsert-explanation")
	defer span.End()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO knowledge_base (symbol, text, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (symbol) DO UPDATE SET
		     text = EXCLUDED.text,
		     updated_at = now()`,
		symbol, text,
	)
	return err
}
