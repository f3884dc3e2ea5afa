package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"studyquiz-service/internal/ai"
	"studyquiz-service/internal/auth"
	"studyquiz-service/internal/domain"
)

// handleGenerate turns study notes into a fresh attempt. The provider key
// comes from the request when given, otherwise from the user's stored key.
// Generated text goes through the same parse pipeline as pasted documents.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Notes        string `json:"notes"`
		NumQuestions int    `json:"num_questions"`
		Difficulty   string `json:"difficulty"`
		APIKey       string `json:"api_key"`
		Shuffle      bool   `json:"shuffle"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "bad json"})
		return
	}
	if strings.TrimSpace(req.Notes) == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "notes are required"})
		return
	}

	apiKey, ok := s.resolveAPIKey(w, r, req.APIKey)
	if !ok {
		return
	}

	text, err := s.generator.GenerateQuiz(r.Context(), ai.GenerateRequest{
		Notes:        req.Notes,
		APIKey:       apiKey,
		NumQuestions: req.NumQuestions,
		Difficulty:   req.Difficulty,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.startFromText(w, r, text, req.Shuffle)
}

// resolveAPIKey prefers the key given in the request and falls back to the
// caller's stored key. A false return means the response was already written.
func (s *Server) resolveAPIKey(w http.ResponseWriter, r *http.Request, provided string) (string, bool) {
	apiKey := strings.TrimSpace(provided)
	if apiKey != "" {
		return apiKey, true
	}
	stored, err := s.accounts.APIKey(r.Context(), auth.UserIDFromContext(r.Context()))
	if errors.Is(err, domain.ErrAPIKeyNotFound) {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "no API key: provide one or save one first"})
		return "", false
	}
	if err != nil {
		s.writeError(w, err)
		return "", false
	}
	return stored, true
}
