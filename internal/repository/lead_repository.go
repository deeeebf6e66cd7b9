package repository

import (
	"context"
	"time"

	"stablecoin-scout/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/trace"
)

const createLeadsTable = `
CREATE TABLE IF NOT EXISTS leads (
    id          BIGSERIAL   PRIMARY KEY,
    name        TEXT        NOT NULL,
    email       TEXT        NOT NULL UNIQUE,
    company     TEXT        NOT NULL DEFAULT '',
    interest    TEXT        NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_leads_created_at
    ON leads (created_at DESC);
`

type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type LeadRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewLeadRepository(pool PgxPool, tracer trace.Tracer) *LeadRepository {
	return &LeadRepository{pool: pool, tracer: tracer}
}

func (r *LeadRepository) RunMigrations(ctx context.Context) error {
	_, span := r.tracer.Start(ctx, "lead-repo.run-migrations")
	defer span.End()

	_, err := r.pool.Exec(ctx, createLeadsTable)
	return err
}

// CreateLead inserts a lead and returns it with ID and timestamp filled in.
// A duplicate email updates the existing row instead of erroring.
func (r *LeadRepository) CreateLead(ctx context.Context, lead *domain.Lead) (*domain.Lead, error) {
	_, span := r.tracer.Start(ctx, "lead-repo.create-lead")
	defer span.End()

	var (
		id int64
		ts time.Time
	)
	err := r.pool.QueryRow(ctx,
		`INSERT INTO leads (name, email, company, interest)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (email) DO UPDATE SET
		     name = EXCLUDED.name,
		     company = EXCLUDED.company,
		     interest = EXCLUDED.interest
		 RETURNING id, created_at`,
		lead.Name, lead.Email, lead.Company, lead.Interest,
	).Scan(&id, &ts)
	if err != nil {
		return nil, err
	}

	out := *lead
	out.ID = id
	out.CreatedAt = ts.UTC()
	return &out, nil
}

func (r *LeadRepository) ListLeads(ctx context.Context, limit int) ([]domain.Lead, error) {
	_, span := r.tracer.Start(ctx, "lead-repo.list-leads")
	defer span.End()

	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, company, interest, created_at
		 FROM leads
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []domain.Lead
	for rows.Next() {
		var l domain.Lead
		var ts time.Time
		if err := rows.Scan(&l.ID, &l.Name, &l.Email, &l.Company, &l.Interest, &ts); err != nil {
			return nil, err
		}
		l.CreatedAt = ts.UTC()
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return leads, nil
}
