package audit

import (
	"context"
	"database/sql"
	"time"
)

// SQLStore implements Store on any database/sql handle with $n placeholders
// (Postgres through pgx, SQLite through modernc).
type SQLStore struct {
	DB *sql.DB
}

// NewSQLStore constructs a SQL-backed audit store.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{DB: db}
}

// Record inserts one provider call row.
func (s *SQLStore) Record(ctx context.Context, call ProviderCall) error {
	const query = `
INSERT INTO provider_calls (
	id, analysis_id, request_id, strategy, outcome, reason, status_code, prompt_hash, duration_ms, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	createdAt := call.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.DB.ExecContext(ctx, query,
		call.ID,
		call.AnalysisID,
		call.RequestID,
		call.Strategy,
		call.Outcome,
		call.Reason,
		call.StatusCode,
		call.PromptHash,
		call.DurationMs,
		createdAt,
	)
	return err
}

// ListRecent returns the newest calls first.
func (s *SQLStore) ListRecent(ctx context.Context, limit int) ([]ProviderCall, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	const query = `
SELECT id, analysis_id, request_id, strategy, outcome, reason, status_code, prompt_hash, duration_ms, created_at
FROM provider_calls
ORDER BY created_at DESC
LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ProviderCall, 0, limit)
	for rows.Next() {
		var c ProviderCall
		if err := rows.Scan(
			&c.ID,
			&c.AnalysisID,
			&c.RequestID,
			&c.Strategy,
			&c.Outcome,
			&c.Reason,
			&c.StatusCode,
			&c.PromptHash,
			&c.DurationMs,
			&c.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

var _ Store = (*SQLStore)(nil)
