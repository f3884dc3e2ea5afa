package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"studyquiz-service/internal/ai"
)

// handleChat relays one study-assistant turn. The client holds the rolling
// conversation history and sends it back with each message.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string           `json:"message"`
		Context string           `json:"context"`
		APIKey  string           `json:"api_key"`
		History []ai.ChatMessage `json:"history"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "bad json"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "message is required"})
		return
	}

	apiKey, ok := s.resolveAPIKey(w, r, req.APIKey)
	if !ok {
		return
	}

	result, err := s.generator.Chat(r.Context(), ai.ChatRequest{
		Message: req.Message,
		Context: req.Context,
		APIKey:  apiKey,
		History: req.History,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"reply":   result.Reply,
		"history": result.History,
	})
}
