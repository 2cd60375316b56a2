package leaderboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type mockRanker struct {
	topResultsFn func(ctx context.Context, limit int) []Entry
}

func (m *mockRanker) TopResults(ctx context.Context, limit int) []Entry {
	return m.topResultsFn(ctx, limit)
}

func TestGetDefaultLimit(t *testing.T) {
	var gotLimit int
	h := NewHandler(&mockRanker{
		topResultsFn: func(ctx context.Context, limit int) []Entry {
			gotLimit = limit
			return []Entry{}
		},
	}, DefaultLimit)

	req := httptest.NewRequest(http.MethodGet, "/leaderboard", nil)
	w := httptest.NewRecorder()

	h.Get(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotLimit != DefaultLimit {
		t.Fatalf("expected default limit %d, got %d", DefaultLimit, gotLimit)
	}
}

func TestGetLimitClamping(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"limit=5", 5},
		{"limit=100", 100},
		{"limit=500", MaxLimit},
		{"limit=0", DefaultLimit},
		{"limit=-3", DefaultLimit},
		{"limit=abc", DefaultLimit},
	}

	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			var gotLimit int
			h := NewHandler(&mockRanker{
				topResultsFn: func(ctx context.Context, limit int) []Entry {
					gotLimit = limit
					return []Entry{}
				},
			}, DefaultLimit)

			req := httptest.NewRequest(http.MethodGet, "/leaderboard?"+tc.query, nil)
			w := httptest.NewRecorder()

			h.Get(w, req)

			if gotLimit != tc.want {
				t.Fatalf("expected limit %d, got %d", tc.want, gotLimit)
			}
		})
	}
}

func TestGetResponseBody(t *testing.T) {
	elapsed := 30
	h := NewHandler(&mockRanker{
		topResultsFn: func(ctx context.Context, limit int) []Entry {
			return []Entry{
				{ID: 2, UserName: "alice", Score: 9, TotalQuestions: 10, TimeTakenSeconds: &elapsed},
				{ID: 5, UserName: "bob", Score: 7, TotalQuestions: 10},
			}
		},
	}, DefaultLimit)

	req := httptest.NewRequest(http.MethodGet, "/leaderboard", nil)
	w := httptest.NewRecorder()

	h.Get(w, req)

	var out struct {
		Results []map[string]interface{} `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(out.Results))
	}
	if out.Results[0]["user_name"] != "alice" || out.Results[0]["time_taken_seconds"] != float64(30) {
		t.Fatalf("unexpected first entry: %v", out.Results[0])
	}
	if out.Results[1]["time_taken_seconds"] != nil {
		t.Fatalf("expected null time for second entry, got %v", out.Results[1]["time_taken_seconds"])
	}
}

func TestClampLimit(t *testing.T) {
	if got := ClampLimit(0); got != DefaultLimit {
		t.Fatalf("ClampLimit(0) = %d", got)
	}
	if got := ClampLimit(101); got != MaxLimit {
		t.Fatalf("ClampLimit(101) = %d", got)
	}
	if got := ClampLimit(50); got != 50 {
		t.Fatalf("ClampLimit(50) = %d", got)
	}
}
