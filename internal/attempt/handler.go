package attempt

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc attemptService
}

type attemptService interface {
	StartAttempt(ctx context.Context, userName string, quizID int64) (int64, error)
	RecordAnswer(ctx context.Context, attemptID, questionID int64, selectedOption string) error
	SubmitAttempt(ctx context.Context, attemptID int64, timeTakenSeconds *int) (*SubmitResult, error)
	GetAttempt(ctx context.Context, attemptID int64) (*Status, error)
}

type startRequest struct {
	UserName string `json:"user_name"`
	QuizID   int64  `json:"quiz_id"`
}

type startResponse struct {
	AttemptID int64 `json:"attempt_id"`
}

type answerRequest struct {
	QuestionID     int64  `json:"question_id"`
	SelectedOption string `json:"selected_option"`
}

type submitRequest struct {
	TimeTakenSeconds *int `json:"time_taken_seconds"`
}

func NewHandler(svc attemptService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.UserName) == "" {
		writeError(w, http.StatusBadRequest, "user_name is required")
		return
	}
	if req.QuizID <= 0 {
		writeError(w, http.StatusBadRequest, "quiz_id is required")
		return
	}

	attemptID, err := h.svc.StartAttempt(r.Context(), req.UserName, req.QuizID)
	if err != nil {
		if errors.Is(err, ErrQuizNotFound) {
			writeError(w, http.StatusNotFound, "Quiz not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, startResponse{AttemptID: attemptID})
}

func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	attemptID, ok := attemptIDParam(w, r)
	if !ok {
		return
	}

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.QuestionID <= 0 {
		writeError(w, http.StatusBadRequest, "question_id is required")
		return
	}
	if req.SelectedOption == "" {
		writeError(w, http.StatusBadRequest, "selected_option is required")
		return
	}

	if err := h.svc.RecordAnswer(r.Context(), attemptID, req.QuestionID, req.SelectedOption); err != nil {
		if errors.Is(err, ErrAttemptNotFound) {
			writeError(w, http.StatusNotFound, "Attempt not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	attemptID, ok := attemptIDParam(w, r)
	if !ok {
		return
	}

	// The submit body is optional; an empty body means no elapsed time was
	// reported.
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.SubmitAttempt(r.Context(), attemptID, req.TimeTakenSeconds)
	if err != nil {
		if errors.Is(err, ErrAttemptNotFound) {
			writeError(w, http.StatusNotFound, "Attempt not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	attemptID, ok := attemptIDParam(w, r)
	if !ok {
		return
	}

	status, err := h.svc.GetAttempt(r.Context(), attemptID)
	if err != nil {
		if errors.Is(err, ErrAttemptNotFound) {
			writeError(w, http.StatusNotFound, "Attempt not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func attemptIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	attemptID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || attemptID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid attempt id")
		return 0, false
	}
	return attemptID, true
}

func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
