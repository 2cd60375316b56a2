package db

import (
	"context"
	"database/sql"
	"fmt"
)

// EnsureSchema creates the relations the attempt workflow writes to. It runs
// once at process start so request paths never issue DDL. The question and
// quiz catalog relations are deliberately not created here: they are owned by
// whoever provisions the content, and their absence is handled by fallback
// query paths.
func EnsureSchema(ctx context.Context, pool *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS attempts (
			id BIGSERIAL PRIMARY KEY,
			quiz_id BIGINT NOT NULL,
			user_name TEXT NOT NULL,
			started_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			submitted_at TIMESTAMPTZ NULL,
			score INT NULL,
			total_questions INT NULL,
			time_taken_seconds INT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS attempt_answers (
			attempt_id BIGINT NOT NULL,
			question_id BIGINT NOT NULL,
			selected_option CHAR(1) NOT NULL,
			PRIMARY KEY (attempt_id, question_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_score ON attempts (score DESC, submitted_at ASC) WHERE score IS NOT NULL`,
	}

	for _, stmt := range statements {
		if _, err := pool.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
