package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestChatBuildsConversation(t *testing.T) {
	var gotBody struct {
		Messages []ChatMessage `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "  Photosynthesis converts light to energy.  "}},
			},
		})
	}))
	defer srv.Close()

	client := newTestClient(Options{OpenAIBaseURL: srv.URL})
	result, err := client.Chat(context.Background(), ChatRequest{
		Message: "What is photosynthesis?",
		Context: "Chapter 3: plants",
		APIKey:  "sk-test",
		History: []ChatMessage{
			{Role: "user", Content: "hi"},
			{Role: "assistant", Content: "hello"},
		},
	})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if result.Reply != "Photosynthesis converts light to energy." {
		t.Fatalf("unexpected reply: %q", result.Reply)
	}

	// system prompt, context, two history turns, then the user message
	msgs := gotBody.Messages
	if len(msgs) != 5 {
		t.Fatalf("expected 5 messages, got %d: %+v", len(msgs), msgs)
	}
	if msgs[0].Role != "system" || !strings.Contains(msgs[0].Content, "study assistant") {
		t.Fatalf("unexpected system prompt: %+v", msgs[0])
	}
	if msgs[1].Role != "system" || !strings.Contains(msgs[1].Content, "Chapter 3") {
		t.Fatalf("expected study material context: %+v", msgs[1])
	}
	if msgs[2].Content != "hi" || msgs[3].Content != "hello" {
		t.Fatalf("history out of order: %+v", msgs[2:4])
	}
	if msgs[4].Role != "user" || msgs[4].Content != "What is photosynthesis?" {
		t.Fatalf("unexpected user message: %+v", msgs[4])
	}

	if len(result.History) != 4 {
		t.Fatalf("expected 4 history turns, got %d", len(result.History))
	}
	if result.History[3].Role != "assistant" || result.History[3].Content != result.Reply {
		t.Fatalf("history missing assistant turn: %+v", result.History)
	}
}

func TestChatCapsHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "reply"}},
			},
		})
	}))
	defer srv.Close()

	history := make([]ChatMessage, 0, 10)
	for i := 0; i < 10; i++ {
		history = append(history, ChatMessage{Role: "user", Content: fmt.Sprintf("turn %d", i)})
	}

	client := newTestClient(Options{OpenAIBaseURL: srv.URL})
	result, err := client.Chat(context.Background(), ChatRequest{
		Message: "newest question",
		APIKey:  "sk-test",
		History: history,
	})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if len(result.History) != 10 {
		t.Fatalf("expected history capped at 10, got %d", len(result.History))
	}
	if result.History[0].Content != "turn 2" {
		t.Fatalf("expected oldest turns dropped, got %+v", result.History[0])
	}
	last := result.History[9]
	if last.Role != "assistant" || last.Content != "reply" {
		t.Fatalf("expected newest assistant turn kept, got %+v", last)
	}
}

func TestChatTruncatesContext(t *testing.T) {
	var gotBody struct {
		Messages []ChatMessage `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "ok"}},
			},
		})
	}))
	defer srv.Close()

	client := newTestClient(Options{OpenAIBaseURL: srv.URL})
	_, err := client.Chat(context.Background(), ChatRequest{
		Message: "q",
		Context: strings.Repeat("x", 5000),
		APIKey:  "sk-test",
	})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if len(gotBody.Messages) < 2 {
		t.Fatalf("expected context message, got %+v", gotBody.Messages)
	}
	if got := len(gotBody.Messages[1].Content); got > 2100 {
		t.Fatalf("context not truncated, %d chars", got)
	}
}

func TestChatClassifiesFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := newTestClient(Options{OpenAIBaseURL: srv.URL})
	_, err := client.Chat(context.Background(), ChatRequest{Message: "q", APIKey: "sk-bad"})
	if !errors.Is(err, ErrInvalidAPIKey) {
		t.Fatalf("expected ErrInvalidAPIKey, got %v", err)
	}
}
