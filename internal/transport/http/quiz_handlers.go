package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"studyquiz-service/internal/auth"
)

// maxUploadBytes bounds pasted and uploaded quiz documents.
const maxUploadBytes = 1 << 20

type attemptStarted struct {
	AttemptID   string   `json:"attempt_id"`
	Total       int      `json:"total"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}

// attemptOwner stringifies the authenticated user for attempt ownership,
// empty for anonymous players.
func attemptOwner(r *http.Request) string {
	if id := auth.UserIDFromContext(r.Context()); id != 0 {
		return strconv.FormatInt(id, 10)
	}
	return ""
}

func (s *Server) handlePaste(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text    string `json:"text"`
		Shuffle bool   `json:"shuffle"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, maxUploadBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "bad json"})
		return
	}
	s.startFromText(w, r, req.Text, req.Shuffle)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "bad multipart form"})
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "missing quiz file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "read quiz file"})
		return
	}
	shuffle := r.FormValue("shuffle") == "true"
	s.startFromText(w, r, string(data), shuffle)
}

func (s *Server) startFromText(w http.ResponseWriter, r *http.Request, text string, shuffle bool) {
	attempt, diagnostics, err := s.attempts.StartFromText(r.Context(), attemptOwner(r), text, shuffle)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.log.Infow("attempt started", "attempt", attempt.ID(), "questions", attempt.Total(), "skipped_blocks", len(diagnostics))
	writeJSON(w, http.StatusCreated, attemptStarted{
		AttemptID:   attempt.ID(),
		Total:       attempt.Total(),
		Diagnostics: diagnostics,
	})
}

func (s *Server) handleStartStored(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Shuffle bool `json:"shuffle"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(io.LimitReader(r.Body, maxUploadBytes)).Decode(&req)
	}
	attempt, err := s.attempts.StartFromQuiz(r.Context(), attemptOwner(r), chi.URLParam(r, "quizID"), req.Shuffle || s.shuffle)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, attemptStarted{AttemptID: attempt.ID(), Total: attempt.Total()})
}

func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request) {
	view, err := s.attempts.CurrentQuestion(chi.URLParam(r, "attemptID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	attemptID := chi.URLParam(r, "attemptID")
	var req struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "bad json"})
		return
	}
	result, err := s.attempts.SubmitAnswer(attemptID, req.Answer)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !result.HasMore {
		s.recordHistory(r, attemptID)
	}
	writeJSON(w, http.StatusOK, result)
}

// recordHistory persists the finished attempt for signed-in users. Failures
// are logged, not surfaced; the answer result already went out.
func (s *Server) recordHistory(r *http.Request, attemptID string) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == 0 {
		return
	}
	attempt, ok := s.attempts.Get(attemptID)
	if !ok || attempt.UserID() != strconv.FormatInt(userID, 10) {
		return
	}
	summary, err := s.attempts.Results(attemptID)
	if err != nil {
		return
	}
	duration := attempt.Elapsed().Round(time.Second).String()
	if err := s.accounts.SaveResult(r.Context(), userID, summary, duration); err != nil {
		s.log.Errorw("save history", "attempt", attemptID, "error", err)
	}
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	summary, err := s.attempts.Results(chi.URLParam(r, "attemptID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	if err := s.attempts.Restart(chi.URLParam(r, "attemptID")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.attempts.Reset(chi.URLParam(r, "attemptID"))
	w.WriteHeader(http.StatusNoContent)
}
