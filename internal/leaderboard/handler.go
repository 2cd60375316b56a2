package leaderboard

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

type Handler struct {
	svc          ranker
	defaultLimit int
}

type ranker interface {
	TopResults(ctx context.Context, limit int) []Entry
}

type leaderboardResponse struct {
	Results []Entry `json:"results"`
}

func NewHandler(svc ranker, defaultLimit int) *Handler {
	if defaultLimit <= 0 || defaultLimit > MaxLimit {
		defaultLimit = DefaultLimit
	}
	return &Handler{svc: svc, defaultLimit: defaultLimit}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	limit := h.defaultLimit
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = ClampLimit(n)
		}
	}

	entries := h.svc.TopResults(r.Context(), limit)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(leaderboardResponse{Results: entries})
}
