package db

import (
	"context"
	"database/sql"
)

// Existence is the result of probing catalog metadata for a relation. Probe
// failures are reported as Unknown rather than collapsed into Absent so each
// caller can decide its own degradation policy.
type Existence int

const (
	Unknown Existence = iota
	Present
	Absent
)

func (e Existence) String() string {
	switch e {
	case Present:
		return "present"
	case Absent:
		return "absent"
	default:
		return "unknown"
	}
}

// QueryRower is the slice of *sql.DB (or *sql.Tx) the prober needs.
type QueryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TableExists probes information_schema for a relation in the public schema.
func TableExists(ctx context.Context, q QueryRower, name string) Existence {
	var exists bool
	err := q.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = $1
		)
	`, name).Scan(&exists)
	if err != nil {
		return Unknown
	}
	if exists {
		return Present
	}
	return Absent
}
