package repository

import (
	"context"

	"resume-editor/internal/domain"

	"github.com/jackc/pgx/v4/pgxpool"
)

// HistoryRepo persists regeneration attempts. Writes are best-effort: a
// nil pool turns the repo into a no-op so a missing history database never
// blocks editing.
type HistoryRepo struct {
	pool *pgxpool.Pool
}

func NewHistoryRepo(pool *pgxpool.Pool) *HistoryRepo {
	return &HistoryRepo{pool: pool}
}

func (r *HistoryRepo) Record(ctx context.Context, rec *domain.RegenRecord) error {
	if r.pool == nil {
		return nil
	}

	_, err := r.pool.Exec(ctx, `INSERT INTO regen_history (id, company, status, view_url, document, error, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO UPDATE SET company = EXCLUDED.company, status = EXCLUDED.status, view_url = EXCLUDED.view_url, document = EXCLUDED.document, error = EXCLUDED.error`,
		rec.ID, rec.Company, rec.Status, rec.ViewURL, []byte(rec.Document), rec.Error, rec.CreatedAt)

	return err
}

// ListRecent returns the newest regeneration records first.
func (r *HistoryRepo) ListRecent(ctx context.Context, limit int) ([]domain.RegenRecord, error) {
	if r.pool == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.pool.Query(ctx, `SELECT id, company, status, view_url, document, error, created_at
		FROM regen_history ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RegenRecord
	for rows.Next() {
		var rec domain.RegenRecord
		var doc []byte
		if err := rows.Scan(&rec.ID, &rec.Company, &rec.Status, &rec.ViewURL, &doc, &rec.Error, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Document = doc
		out = append(out, rec)
	}
	return out, rows.Err()
}
