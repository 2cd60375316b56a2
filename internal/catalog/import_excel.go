package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

type QuestionImportRowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type QuestionImportReport struct {
	TotalRows   int                      `json:"total_rows"`
	SuccessRows int                      `json:"success_rows"`
	FailedRows  int                      `json:"failed_rows"`
	Errors      []QuestionImportRowError `json:"errors"`
}

var questionSheetHeaders = []string{"text", "option_a", "option_b", "option_c", "option_d", "correct_option"}

// questionRow is the operator-facing full record. Unlike Question it carries
// the correct option; it never leaves the import/export tooling.
type questionRow struct {
	Text          string
	OptionA       string
	OptionB       string
	OptionC       string
	OptionD       string
	CorrectOption string
}

// ImportQuestionsExcel loads the question catalog from the first sheet of an
// xlsx workbook. Rows that fail validation are reported and skipped; valid
// rows are inserted regardless.
func (s *Service) ImportQuestionsExcel(ctx context.Context, r io.Reader) (*QuestionImportReport, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open excel: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("excel sheet is empty")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, errors.New("no data rows found")
	}

	header := map[string]int{}
	for i, h := range rows[0] {
		header[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range questionSheetHeaders {
		if _, ok := header[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	if err := s.ensureQuestionsTable(ctx); err != nil {
		return nil, err
	}

	report := &QuestionImportReport{}
	for i, row := range rows[1:] {
		rowNo := i + 2
		report.TotalRows++

		q, rowErr := parseQuestionRow(row, header)
		if rowErr != "" {
			report.FailedRows++
			report.Errors = append(report.Errors, QuestionImportRowError{Row: rowNo, Error: rowErr})
			continue
		}

		_, err := s.db.ExecContext(ctx, `
			INSERT INTO questions (text, option_a, option_b, option_c, option_d, correct_option)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, q.Text, q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.CorrectOption)
		if err != nil {
			report.FailedRows++
			report.Errors = append(report.Errors, QuestionImportRowError{Row: rowNo, Error: fmt.Sprintf("insert: %v", err)})
			continue
		}
		report.SuccessRows++
	}

	return report, nil
}

// ExportQuestionsExcel dumps the full question catalog, correct options
// included, for operator backup and round-tripping through the importer.
func (s *Service) ExportQuestionsExcel(ctx context.Context) ([]byte, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT text, option_a, option_b, option_c, option_d, correct_option
		FROM questions
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, h := range questionSheetHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	rowNo := 2
	for rows.Next() {
		var q questionRow
		if err := rows.Scan(&q.Text, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD, &q.CorrectOption); err != nil {
			return nil, fmt.Errorf("scan question row: %w", err)
		}
		values := []any{q.Text, q.OptionA, q.OptionB, q.OptionC, q.OptionD, strings.TrimSpace(q.CorrectOption)}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNo)
			_ = f.SetCellValue(sheet, cell, v)
		}
		rowNo++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	_ = f.SetColWidth(sheet, "A", "F", 30)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

func parseQuestionRow(row []string, header map[string]int) (questionRow, string) {
	get := func(col string) string {
		idx := header[col]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	q := questionRow{
		Text:          get("text"),
		OptionA:       get("option_a"),
		OptionB:       get("option_b"),
		OptionC:       get("option_c"),
		OptionD:       get("option_d"),
		CorrectOption: strings.ToUpper(get("correct_option")),
	}

	if q.Text == "" {
		return questionRow{}, "text is required"
	}
	for col, v := range map[string]string{
		"option_a": q.OptionA,
		"option_b": q.OptionB,
		"option_c": q.OptionC,
		"option_d": q.OptionD,
	} {
		if v == "" {
			return questionRow{}, col + " is required"
		}
	}
	switch q.CorrectOption {
	case "A", "B", "C", "D":
	default:
		return questionRow{}, fmt.Sprintf("correct_option must be one of A-D, got %q", q.CorrectOption)
	}

	return q, ""
}

func (s *Service) ensureQuestionsTable(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS questions (
			id BIGSERIAL PRIMARY KEY,
			text TEXT NOT NULL,
			option_a TEXT NOT NULL,
			option_b TEXT NOT NULL,
			option_c TEXT NOT NULL,
			option_d TEXT NOT NULL,
			correct_option CHAR(1) NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure questions table: %w", err)
	}
	return nil
}
