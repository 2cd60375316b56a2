package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

type mockCatalogService struct {
	listQuizzesFn   func(ctx context.Context) ([]Quiz, error)
	listQuestionsFn func(ctx context.Context, quizID int64) ([]Question, error)
}

func (m *mockCatalogService) ListQuizzes(ctx context.Context) ([]Quiz, error) {
	if m.listQuizzesFn == nil {
		return nil, errors.New("not implemented")
	}
	return m.listQuizzesFn(ctx)
}

func (m *mockCatalogService) ListQuestions(ctx context.Context, quizID int64) ([]Question, error) {
	if m.listQuestionsFn == nil {
		return nil, errors.New("not implemented")
	}
	return m.listQuestionsFn(ctx, quizID)
}

func withChiParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestListQuizzesBody(t *testing.T) {
	desc := "Default quiz comprised of all questions."
	total := 12
	h := NewHandler(&mockCatalogService{
		listQuizzesFn: func(ctx context.Context) ([]Quiz, error) {
			return []Quiz{{ID: 1, Title: "General Quiz", Description: &desc, TotalQuestions: &total}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/quizzes", nil)
	w := httptest.NewRecorder()

	h.ListQuizzes(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var out []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out) != 1 || out[0]["id"] != float64(1) || out[0]["title"] != "General Quiz" || out[0]["total_questions"] != float64(12) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestListQuestionsNeverExposesCorrectOption(t *testing.T) {
	h := NewHandler(&mockCatalogService{
		listQuestionsFn: func(ctx context.Context, quizID int64) ([]Question, error) {
			return []Question{{ID: 5, Text: "2+2?", OptionA: "3", OptionB: "4", OptionC: "5", OptionD: "6"}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/quizzes/1/questions", nil)
	req = withChiParam(req, "quizID", "1")
	w := httptest.NewRecorder()

	h.ListQuestions(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "correct") {
		t.Fatalf("question listing leaked a correct-option field: %s", w.Body.String())
	}

	var out struct {
		Questions []map[string]interface{} `json:"questions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out.Questions) != 1 || out.Questions[0]["option_b"] != "4" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestListQuestionsUnknownQuizIs404(t *testing.T) {
	h := NewHandler(&mockCatalogService{
		listQuestionsFn: func(ctx context.Context, quizID int64) ([]Question, error) {
			return nil, ErrQuizNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/quizzes/9/questions", nil)
	req = withChiParam(req, "quizID", "9")
	w := httptest.NewRecorder()

	h.ListQuestions(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Quiz not found") {
		t.Fatalf("unexpected error body: %s", w.Body.String())
	}
}

func TestListQuestionsInvalidIDIs400(t *testing.T) {
	h := NewHandler(&mockCatalogService{})

	req := httptest.NewRequest(http.MethodGet, "/quizzes/abc/questions", nil)
	req = withChiParam(req, "quizID", "abc")
	w := httptest.NewRecorder()

	h.ListQuestions(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
