package postgres

import (
	"context"
	"go-forms-gateway/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type submissionRepo struct {
	db *pgxpool.Pool
}

// NewSubmissionRepository creates the audit-log repository.
//
// Expected schema:
//
//	CREATE TABLE submissions (
//	    id         UUID PRIMARY KEY,
//	    form       TEXT NOT NULL,
//	    name       TEXT NOT NULL,
//	    email      TEXT NOT NULL,
//	    outcome    TEXT NOT NULL,
//	    detail     TEXT NOT NULL DEFAULT '',
//	    client_ip  TEXT NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL
//	);
func NewSubmissionRepository(db *pgxpool.Pool) domain.SubmissionRepository {
	return &submissionRepo{db: db}
}

// Record inserts one submission attempt
func (r *submissionRepo) Record(ctx context.Context, rec *domain.SubmissionRecord) error {
	query := `
		INSERT INTO submissions (id, form, name, email, outcome, detail, client_ip, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		rec.ID,
		rec.Form,
		rec.Name,
		rec.Email,
		rec.Outcome,
		rec.Detail,
		rec.ClientIP,
		rec.CreatedAt,
	)
	return err
}
