package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"studyquiz-service/internal/auth"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c credentials) validate() string {
	if !strings.Contains(c.Email, "@") {
		return "a valid email is required"
	}
	if len(c.Password) < 8 {
		return "password must be at least 8 characters"
	}
	return ""
}

type tokenResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "bad json"})
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: msg})
		return
	}
	user, err := s.accounts.CreateUser(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}
	token, err := s.auth.IssueToken(user.ID, user.Email)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.log.Infow("user registered", "user", user.ID)
	writeJSON(w, http.StatusCreated, tokenResponse{Token: token, Email: user.Email})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "bad json"})
		return
	}
	user, err := s.accounts.Authenticate(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}
	token, err := s.auth.IssueToken(user.ID, user.Email)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token, Email: user.Email})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := s.accounts.History(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": entries})
}

func (s *Server) handleKeyStatus(w http.ResponseWriter, r *http.Request) {
	has, err := s.accounts.HasAPIKey(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"has_key": has})
}

func (s *Server) handleKeySave(w http.ResponseWriter, r *http.Request) {
	var req struct {
		APIKey string `json:"api_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "bad json"})
		return
	}
	req.APIKey = strings.TrimSpace(req.APIKey)
	if req.APIKey == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "api_key is required"})
		return
	}
	if err := s.accounts.SaveAPIKey(r.Context(), auth.UserIDFromContext(r.Context()), req.APIKey); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleKeyDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.accounts.DeleteAPIKey(r.Context(), auth.UserIDFromContext(r.Context())); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
