package app

import (
	"database/sql"
	"net/http"

	"quizapi/internal/app/observability"
	"quizapi/internal/attempt"
	"quizapi/internal/catalog"
	"quizapi/internal/leaderboard"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg Config, pool *sql.DB) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	collector := observability.NewCollector(pool)
	r.Use(collector.Middleware)

	catalogSvc := catalog.NewService(pool)
	catalogHandler := catalog.NewHandler(catalogSvc)

	attemptSvc := attempt.NewService(pool, catalogSvc)
	attemptHandler := attempt.NewHandler(attemptSvc)

	leaderboardSvc := leaderboard.NewService(pool)
	leaderboardHandler := leaderboard.NewHandler(leaderboardSvc, cfg.LeaderboardDefaultLimit)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message":"Healthy"}`))
	})

	r.Get("/quizzes", catalogHandler.ListQuizzes)
	r.Get("/quizzes/{quizID}/questions", catalogHandler.ListQuestions)

	r.Route("/attempts", func(api chi.Router) {
		api.Post("/start", attemptHandler.Start)
		api.Post("/{id}/answer", attemptHandler.Answer)
		api.Post("/{id}/submit", attemptHandler.Submit)
		api.Get("/{id}", attemptHandler.Get)
	})

	r.Get("/leaderboard", leaderboardHandler.Get)

	r.Get("/internal/metrics", collector.MetricsHandler)

	return r
}
