package attempt

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	ErrQuizNotFound    = errors.New("quiz not found")
	ErrAttemptNotFound = errors.New("attempt not found")
)

type quizChecker interface {
	QuizExists(ctx context.Context, quizID int64) bool
}

type Service struct {
	db      *sql.DB
	quizzes quizChecker
}

type SubmitResult struct {
	AttemptID      int64 `json:"attempt_id"`
	Score          int   `json:"score"`
	TotalQuestions int   `json:"total_questions"`
}

type Status struct {
	AttemptID        int64  `json:"attempt_id"`
	QuizID           int64  `json:"quiz_id"`
	UserName         string `json:"user_name"`
	AnswersCount     int    `json:"answers_count"`
	IsSubmitted      bool   `json:"is_submitted"`
	Score            *int   `json:"score"`
	TotalQuestions   *int   `json:"total_questions"`
	TimeTakenSeconds *int   `json:"time_taken_seconds"`
}

func NewService(pool *sql.DB, quizzes quizChecker) *Service {
	return &Service{db: pool, quizzes: quizzes}
}

// StartAttempt validates the quiz under the catalog existence rule and opens
// a new attempt for it.
func (s *Service) StartAttempt(ctx context.Context, userName string, quizID int64) (int64, error) {
	if !s.quizzes.QuizExists(ctx, quizID) {
		return 0, ErrQuizNotFound
	}

	var attemptID int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO attempts (quiz_id, user_name)
		VALUES ($1, $2)
		RETURNING id
	`, quizID, userName).Scan(&attemptID)
	if err != nil {
		return 0, fmt.Errorf("insert attempt: %w", err)
	}
	return attemptID, nil
}

// RecordAnswer upserts the selection for one question of an open attempt.
// Recording the same question twice keeps only the latest selection. The
// question id and option letter are stored unvalidated; their validity is
// settled at submission time.
func (s *Service) RecordAnswer(ctx context.Context, attemptID, questionID int64, selectedOption string) error {
	if err := s.checkAttemptExists(ctx, attemptID); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attempt_answers (attempt_id, question_id, selected_option)
		VALUES ($1, $2, $3)
		ON CONFLICT (attempt_id, question_id)
		DO UPDATE SET selected_option = EXCLUDED.selected_option
	`, attemptID, questionID, firstChar(selectedOption))
	if err != nil {
		return fmt.Errorf("upsert answer: %w", err)
	}
	return nil
}

// SubmitAttempt scores the attempt's answers against the question relation
// and persists the outcome. Submitting again recomputes and overwrites the
// prior result; the operation is deterministic over the stored answers.
func (s *Service) SubmitAttempt(ctx context.Context, attemptID int64, timeTakenSeconds *int) (*SubmitResult, error) {
	if err := s.checkAttemptExists(ctx, attemptID); err != nil {
		return nil, err
	}

	// A failed join (for example, no questions relation at all) degrades to
	// a zero score instead of failing the submission.
	score, total := 0, 0
	if evals, err := s.loadAnswerEvals(ctx, attemptID); err == nil {
		score, total = scoreAnswers(evals)
	}

	_, err := s.db.ExecContext(ctx, `
		UPDATE attempts
		SET submitted_at = now(),
			score = $2,
			total_questions = $3,
			time_taken_seconds = $4
		WHERE id = $1
	`, attemptID, score, total, timeTakenSeconds)
	if err != nil {
		return nil, fmt.Errorf("update attempt result: %w", err)
	}

	return &SubmitResult{AttemptID: attemptID, Score: score, TotalQuestions: total}, nil
}

// GetAttempt reports the attempt's progress. The result fields stay null
// until the attempt has been submitted.
func (s *Service) GetAttempt(ctx context.Context, attemptID int64) (*Status, error) {
	var (
		st          Status
		submittedAt sql.NullTime
		score       sql.NullInt64
		total       sql.NullInt64
		timeTaken   sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, quiz_id, user_name, submitted_at, score, total_questions, time_taken_seconds
		FROM attempts
		WHERE id = $1
	`, attemptID).Scan(&st.AttemptID, &st.QuizID, &st.UserName, &submittedAt, &score, &total, &timeTaken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("load attempt: %w", err)
	}

	if err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM attempt_answers
		WHERE attempt_id = $1
	`, attemptID).Scan(&st.AnswersCount); err != nil {
		return nil, fmt.Errorf("count answers: %w", err)
	}

	st.IsSubmitted = submittedAt.Valid
	if st.IsSubmitted {
		if score.Valid {
			n := int(score.Int64)
			st.Score = &n
		}
		if total.Valid {
			n := int(total.Int64)
			st.TotalQuestions = &n
		}
		if timeTaken.Valid {
			n := int(timeTaken.Int64)
			st.TimeTakenSeconds = &n
		}
	}

	return &st, nil
}

func (s *Service) checkAttemptExists(ctx context.Context, attemptID int64) error {
	var exists bool
	if err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM attempts WHERE id = $1)
	`, attemptID).Scan(&exists); err != nil {
		return fmt.Errorf("check attempt: %w", err)
	}
	if !exists {
		return ErrAttemptNotFound
	}
	return nil
}

func (s *Service) loadAnswerEvals(ctx context.Context, attemptID int64) ([]answerEval, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT aa.question_id, aa.selected_option, q.correct_option
		FROM attempt_answers aa
		LEFT JOIN questions q ON q.id = aa.question_id
		WHERE aa.attempt_id = $1
	`, attemptID)
	if err != nil {
		return nil, fmt.Errorf("query answer evaluations: %w", err)
	}
	defer rows.Close()

	out := make([]answerEval, 0)
	for rows.Next() {
		var (
			ev      answerEval
			correct sql.NullString
		)
		if err := rows.Scan(&ev.QuestionID, &ev.SelectedOption, &correct); err != nil {
			return nil, fmt.Errorf("scan answer evaluation: %w", err)
		}
		if correct.Valid {
			ev.CorrectOption = &correct.String
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answer evaluations: %w", err)
	}
	return out, nil
}
