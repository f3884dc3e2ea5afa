package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"studyquiz-service/internal/ai"
	"studyquiz-service/internal/domain"
	"studyquiz-service/internal/quiztext"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error       string   `json:"error"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}

// writeError maps service errors onto HTTP statuses. Parse failures carry
// their per-block diagnostics through to the client.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var parseErr *quiztext.NoValidQuestionsError
	switch {
	case errors.As(err, &parseErr):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: parseErr.Error(), Diagnostics: parseErr.Diagnostics})
	case errors.Is(err, domain.ErrEmptyInput), errors.Is(err, domain.ErrNoBlocksFound):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrAttemptNotFound),
		errors.Is(err, domain.ErrQuizNotFound),
		errors.Is(err, domain.ErrAPIKeyNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrQuizFinished), errors.Is(err, domain.ErrEmailTaken):
		writeJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidAnswer), errors.Is(err, ai.ErrInvalidAPIKey):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: err.Error()})
	case errors.Is(err, ai.ErrRateLimited):
		writeJSON(w, http.StatusTooManyRequests, errorBody{Error: err.Error()})
	case errors.Is(err, ai.ErrQuotaExceeded):
		writeJSON(w, http.StatusPaymentRequired, errorBody{Error: err.Error()})
	case errors.Is(err, ai.ErrBadGeneration):
		writeJSON(w, http.StatusBadGateway, errorBody{Error: err.Error()})
	default:
		s.log.Errorw("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}
