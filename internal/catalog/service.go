package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quizapi/internal/db"
)

var ErrQuizNotFound = errors.New("quiz not found")

// DefaultQuizID is the synthetic quiz representing the whole question set
// when no quiz catalog relation exists.
const DefaultQuizID = 1

type Service struct {
	db *sql.DB
}

type Quiz struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	Description    *string `json:"description"`
	TotalQuestions *int    `json:"total_questions"`
}

// Question is the reader-facing projection: the correct option is never part
// of this type, so it cannot leak through the listing endpoint.
type Question struct {
	ID      int64  `json:"id"`
	Text    string `json:"text"`
	OptionA string `json:"option_a"`
	OptionB string `json:"option_b"`
	OptionC string `json:"option_c"`
	OptionD string `json:"option_d"`
}

func NewService(pool *sql.DB) *Service {
	return &Service{db: pool}
}

// ListQuizzes reads the quiz catalog when it exists. Without a catalog the
// entire question set is presented as a single default quiz.
func (s *Service) ListQuizzes(ctx context.Context) ([]Quiz, error) {
	if db.TableExists(ctx, s.db, "quizzes") != db.Present {
		return []Quiz{s.defaultQuiz(ctx)}, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, total_questions
		FROM quizzes
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query quizzes: %w", err)
	}
	defer rows.Close()

	out := make([]Quiz, 0)
	for rows.Next() {
		var (
			q     Quiz
			desc  sql.NullString
			total sql.NullInt64
		)
		if err := rows.Scan(&q.ID, &q.Title, &desc, &total); err != nil {
			return nil, fmt.Errorf("scan quiz row: %w", err)
		}
		if desc.Valid {
			q.Description = &desc.String
		}
		if total.Valid {
			n := int(total.Int64)
			q.TotalQuestions = &n
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quizzes: %w", err)
	}
	return out, nil
}

// ListQuestions returns the questions of a quiz ordered by id. A dedicated
// quiz-to-question mapping relation is honored when present; otherwise every
// question belongs to the default quiz.
func (s *Service) ListQuestions(ctx context.Context, quizID int64) ([]Question, error) {
	if !s.QuizExists(ctx, quizID) {
		return nil, ErrQuizNotFound
	}

	if db.TableExists(ctx, s.db, "quiz_questions") == db.Present {
		questions, err := s.queryQuestions(ctx, `
			SELECT q.id, q.text, q.option_a, q.option_b, q.option_c, q.option_d
			FROM questions q
			JOIN quiz_questions qq ON qq.question_id = q.id
			WHERE qq.quiz_id = $1
			ORDER BY q.id ASC
		`, quizID)
		if err == nil {
			return questions, nil
		}
		// Mapping relation unusable; serve the flat question set instead.
	}

	return s.queryQuestions(ctx, `
		SELECT id, text, option_a, option_b, option_c, option_d
		FROM questions
		ORDER BY id ASC
	`)
}

// QuizExists implements the shared existence rule: with a non-empty catalog
// the id must be a member; with no catalog (absent, empty, or unprobeable)
// only the default quiz exists. Infrastructure failures degrade to the
// default rule rather than erroring.
func (s *Service) QuizExists(ctx context.Context, quizID int64) bool {
	if db.TableExists(ctx, s.db, "quizzes") == db.Present {
		var member, nonEmpty bool
		err := s.db.QueryRowContext(ctx, `
			SELECT
				EXISTS (SELECT 1 FROM quizzes WHERE id = $1),
				EXISTS (SELECT 1 FROM quizzes)
		`, quizID).Scan(&member, &nonEmpty)
		if err == nil && nonEmpty {
			return member
		}
	}
	return quizID == DefaultQuizID
}

func (s *Service) queryQuestions(ctx context.Context, query string, args ...interface{}) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	out := make([]Question, 0)
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.Text, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD); err != nil {
			return nil, fmt.Errorf("scan question row: %w", err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return out, nil
}

func (s *Service) defaultQuiz(ctx context.Context) Quiz {
	desc := "Default quiz comprised of all questions."
	total := 0
	if db.TableExists(ctx, s.db, "questions") == db.Present {
		if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&total); err != nil {
			total = 0
		}
	}
	return Quiz{
		ID:             DefaultQuizID,
		Title:          "General Quiz",
		Description:    &desc,
		TotalQuestions: &total,
	}
}
