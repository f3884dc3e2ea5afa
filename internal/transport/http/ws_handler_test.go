package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"studyquiz-service/internal/app"
	"studyquiz-service/internal/infra/memory"
)

func TestWebSocketPlayThrough(t *testing.T) {
	ts := newTestServer(t, stubGenerator{})

	_, body := doJSON(t, http.MethodPost, ts.URL+"/api/quiz/paste", "", map[string]string{"text": sampleDoc})
	attemptID, _ := body["attempt_id"].(string)
	if attemptID == "" {
		t.Fatalf("missing attempt_id in %v", body)
	}

	u := "ws" + ts.URL[len("http"):] + "/ws?attemptId=" + attemptID
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// First question is pushed on connect.
	typ, payload := readNext(conn, t, "question")
	if payload["question"] != "What is 2+2?" {
		t.Fatalf("unexpected first question: %v", payload)
	}

	writeMsg(conn, t, map[string]any{"type": "answer", "payload": map[string]string{"letter": "B"}})
	typ, payload = readNext(conn, t, "answerResult")
	if payload["correct"] != true {
		t.Fatalf("expected correct answer, got %v", payload)
	}
	readNext(conn, t, "question")

	writeMsg(conn, t, map[string]any{"type": "answer", "payload": map[string]string{"letter": "B"}})
	readNext(conn, t, "answerResult")

	// Attempt is done; the final push carries the results.
	typ, payload = readNext(conn, t, "results")
	if typ != "results" || payload["score"].(float64) != 1 || payload["total"].(float64) != 2 {
		t.Fatalf("unexpected results: %s %v", typ, payload)
	}

	// Restart rewinds back to the first question.
	writeMsg(conn, t, map[string]any{"type": "restart"})
	_, payload = readNext(conn, t, "question")
	if payload["current"].(float64) != 1 {
		t.Fatalf("expected first question after restart, got %v", payload)
	}
}

func TestWebSocketRejectsBadInput(t *testing.T) {
	ts := newTestServer(t, stubGenerator{})

	_, body := doJSON(t, http.MethodPost, ts.URL+"/api/quiz/paste", "", map[string]string{"text": sampleDoc})
	attemptID := body["attempt_id"].(string)

	u := "ws" + ts.URL[len("http"):] + "/ws?attemptId=" + attemptID
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	readNext(conn, t, "question")

	writeMsg(conn, t, map[string]any{"type": "answer", "payload": map[string]string{"letter": "Z"}})
	readNext(conn, t, "error")

	writeMsg(conn, t, map[string]any{"type": "shout"})
	readNext(conn, t, "error")
}

func TestWebSocketUnknownAttempt(t *testing.T) {
	ts := newTestServer(t, stubGenerator{})

	u := "ws" + ts.URL[len("http"):] + "/ws?attemptId=nope"
	_, resp, err := websocket.DefaultDialer.Dial(u, nil)
	if err == nil {
		t.Fatalf("expected dial to fail for unknown attempt")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 handshake, got %+v", resp)
	}
}

func TestPushStateReturnsAfterWriterExit(t *testing.T) {
	attempts := app.NewAttemptService(
		memory.NewAttemptStore(),
		memory.NewQuizRepository(memory.NewStaticQuizLoader(storedQuizzes()), time.Minute),
	)
	attempt, _, err := attempts.StartFromText(context.Background(), "", sampleDoc, false)
	if err != nil {
		t.Fatalf("start attempt: %v", err)
	}
	h := NewWSHandler(attempts)

	// Writer already gone, nothing draining send.
	send := make(chan outboundMessage[any])
	writerDone := make(chan struct{})
	close(writerDone)

	done := make(chan bool, 1)
	go func() { done <- h.pushState(send, writerDone, attempt.ID()) }()

	select {
	case ok := <-done:
		if ok {
			t.Fatalf("expected pushState to report a dead writer")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("pushState blocked after writer exit")
	}
}

func writeMsg(conn *websocket.Conn, t *testing.T, msg map[string]any) {
	t.Helper()
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write json: %v", err)
	}
}

func readNext(conn *websocket.Conn, t *testing.T, expect string) (string, map[string]any) {
	t.Helper()
	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if expect != "" && msg.Type != expect {
		t.Fatalf("expected type %s, got %s", expect, msg.Type)
	}
	return msg.Type, msg.Payload
}
