package audit

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStore appends audit events to the validation_audit table. It uses
// database/sql over the pgx stdlib driver.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const insertEventSQL = `
INSERT INTO validation_audit (
	id, submission_id, office_code, area_of_law, outcome,
	submission_errors, claim_errors, duration_ms, occurred_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	_, err := s.db.ExecContext(ctx, insertEventSQL,
		event.ID,
		event.SubmissionID,
		event.OfficeCode,
		event.AreaOfLaw,
		event.Outcome,
		event.SubmissionErrors,
		event.ClaimErrors,
		event.Duration.Milliseconds(),
		event.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}
