package leaderboard

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"

	"quizapi/internal/db"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type Service struct {
	db *sql.DB
}

// Entry is one ranked row, sourced from submitted attempts or, in legacy
// deployments, from a standalone results relation.
type Entry struct {
	ID               int64  `json:"id"`
	UserName         string `json:"user_name"`
	Score            int    `json:"score"`
	TotalQuestions   int    `json:"total_questions"`
	TimeTakenSeconds *int   `json:"time_taken_seconds"`
}

func NewService(pool *sql.DB) *Service {
	return &Service{db: pool}
}

// TopResults returns at most limit entries, best score first, earlier
// submission breaking ties. The ranking is strictly best-effort: a missing or
// unreadable attempts relation falls through to the legacy results relation,
// and any failure there degrades to whatever was collected.
func (s *Service) TopResults(ctx context.Context, limit int) []Entry {
	limit = ClampLimit(limit)

	if db.TableExists(ctx, s.db, "attempts") == db.Present {
		entries, err := s.collect(ctx, sqlBuilder.
			Select("id", "user_name", "score", "total_questions", "time_taken_seconds").
			From("attempts").
			Where("score IS NOT NULL").
			OrderBy("score DESC", "submitted_at ASC").
			Limit(uint64(limit)))
		if err == nil {
			return entries
		}
	}

	if db.TableExists(ctx, s.db, "results") == db.Present {
		entries, _ := s.collect(ctx, sqlBuilder.
			Select("id", "user_name", "score", "total_questions", "time_taken_seconds").
			From("results").
			OrderBy("score DESC", "id ASC").
			Limit(uint64(limit)))
		return entries
	}

	return []Entry{}
}

// collect runs the built query and scans entries, keeping whatever was read
// before any mid-iteration failure.
func (s *Service) collect(ctx context.Context, q squirrel.SelectBuilder) ([]Entry, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return []Entry{}, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return []Entry{}, err
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var (
			e         Entry
			score     sql.NullInt64
			total     sql.NullInt64
			timeTaken sql.NullInt64
		)
		if err := rows.Scan(&e.ID, &e.UserName, &score, &total, &timeTaken); err != nil {
			return entries, nil
		}
		e.Score = int(score.Int64)
		e.TotalQuestions = int(total.Int64)
		if timeTaken.Valid {
			n := int(timeTaken.Int64)
			e.TimeTakenSeconds = &n
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return entries, nil
	}
	return entries, nil
}

// ClampLimit bounds a requested page size to [1, MaxLimit], defaulting when
// unset or nonsensical.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
