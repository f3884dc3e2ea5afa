package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"

	"studyquiz-service/internal/app"
	"studyquiz-service/internal/domain"
)

// WSHandler drives one attempt interactively over a websocket: the server
// pushes the current question, the client answers, the server replies with
// the result and the next question until the attempt is finished.
type WSHandler struct {
	attempts *app.AttemptService
	upgrader websocket.Upgrader
}

func NewWSHandler(attempts *app.AttemptService) *WSHandler {
	return &WSHandler{
		attempts: attempts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	Letter string `json:"letter"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and runs the question/answer loop for the
// attempt named in the query string.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	attemptID := r.URL.Query().Get("attemptId")
	if attemptID == "" {
		http.Error(w, "missing attemptId", http.StatusBadRequest)
		return
	}
	if _, ok := h.attempts.Get(attemptID); !ok {
		http.Error(w, "attempt not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})

	// Single writer goroutine; the read loop below never writes directly.
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}()

	h.pushState(send, writerDone, attemptID)

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		ok := true
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				ok = trySend(send, writerDone, outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}})
				break
			}
			result, err := h.attempts.SubmitAnswer(attemptID, payload.Letter)
			if err != nil {
				ok = trySend(send, writerDone, outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}})
				break
			}
			if ok = trySend(send, writerDone, outboundMessage[any]{Type: "answerResult", Payload: result}); ok {
				ok = h.pushState(send, writerDone, attemptID)
			}
		case "restart":
			if err := h.attempts.Restart(attemptID); err != nil {
				ok = trySend(send, writerDone, outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}})
				break
			}
			ok = h.pushState(send, writerDone, attemptID)
		default:
			ok = trySend(send, writerDone, outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}})
		}
		if !ok {
			break
		}
	}

	close(send)
	<-writerDone
}

// trySend queues msg for the writer goroutine. It reports false once the
// writer has exited, so the read loop never blocks on a dead writer.
func trySend(send chan<- outboundMessage[any], writerDone <-chan struct{}, msg outboundMessage[any]) bool {
	select {
	case send <- msg:
		return true
	case <-writerDone:
		return false
	}
}

// pushState sends the current question, or the final results once the
// attempt has run out of questions.
func (h *WSHandler) pushState(send chan<- outboundMessage[any], writerDone <-chan struct{}, attemptID string) bool {
	view, err := h.attempts.CurrentQuestion(attemptID)
	if errors.Is(err, domain.ErrQuizFinished) {
		summary, rerr := h.attempts.Results(attemptID)
		if rerr != nil {
			return trySend(send, writerDone, outboundMessage[any]{Type: "error", Payload: errorPayload{Message: rerr.Error()}})
		}
		return trySend(send, writerDone, outboundMessage[any]{Type: "results", Payload: summary})
	}
	if err != nil {
		return trySend(send, writerDone, outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}})
	}
	return trySend(send, writerDone, outboundMessage[any]{Type: "question", Payload: view})
}
