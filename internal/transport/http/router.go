// Package http exposes the quiz service over a chi REST API plus a
// websocket endpoint for live play.
package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"studyquiz-service/internal/ai"
	"studyquiz-service/internal/app"
	"studyquiz-service/internal/auth"
	"studyquiz-service/internal/domain"
)

// AccountStore is the slice of the persistence layer the handlers need:
// accounts, attempt history, and stored provider keys.
type AccountStore interface {
	CreateUser(ctx context.Context, email, password string) (domain.User, error)
	Authenticate(ctx context.Context, email, password string) (domain.User, error)
	SaveResult(ctx context.Context, userID int64, summary domain.AttemptSummary, duration string) error
	History(ctx context.Context, userID int64) ([]domain.HistoryEntry, error)
	SaveAPIKey(ctx context.Context, userID int64, apiKey string) error
	APIKey(ctx context.Context, userID int64) (string, error)
	HasAPIKey(ctx context.Context, userID int64) (bool, error)
	DeleteAPIKey(ctx context.Context, userID int64) error
}

// QuizGenerator is the AI surface the handlers use: quiz generation from
// study notes and the study-assistant chat.
type QuizGenerator interface {
	GenerateQuiz(ctx context.Context, req ai.GenerateRequest) (string, error)
	Chat(ctx context.Context, req ai.ChatRequest) (ai.ChatResult, error)
}

// Server bundles the handler dependencies behind one router.
type Server struct {
	log       *zap.SugaredLogger
	attempts  *app.AttemptService
	accounts  AccountStore
	auth      *auth.Service
	generator QuizGenerator
	origins   []string
	shuffle   bool
}

// NewServer wires the handler dependencies. shuffleDefault applies to
// stored-quiz starts that do not ask for an order explicitly.
func NewServer(log *zap.SugaredLogger, attempts *app.AttemptService, accounts AccountStore, authSvc *auth.Service, generator QuizGenerator, origins []string, shuffleDefault bool) *Server {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return &Server{
		log:       log,
		attempts:  attempts,
		accounts:  accounts,
		auth:      authSvc,
		generator: generator,
		origins:   origins,
		shuffle:   shuffleDefault,
	}
}

// Router builds the HTTP routing table. Quiz-taking routes accept anonymous
// callers; account and generation routes require a bearer token.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.auth.OptionalMiddleware)
			r.Post("/quiz/paste", s.handlePaste)
			r.Post("/quiz/upload", s.handleUpload)
			r.Post("/quiz/{quizID}/start", s.handleStartStored)
			r.Get("/attempts/{attemptID}/question", s.handleQuestion)
			r.Post("/attempts/{attemptID}/answer", s.handleAnswer)
			r.Get("/attempts/{attemptID}/results", s.handleResults)
			r.Post("/attempts/{attemptID}/restart", s.handleRestart)
			r.Delete("/attempts/{attemptID}", s.handleReset)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.auth.Middleware)
			r.Post("/generate", s.handleGenerate)
			r.Post("/chat", s.handleChat)
			r.Get("/me/history", s.handleHistory)
			r.Get("/me/key", s.handleKeyStatus)
			r.Put("/me/key", s.handleKeySave)
			r.Delete("/me/key", s.handleKeyDelete)
		})
	})

	ws := NewWSHandler(s.attempts)
	r.Get("/ws", ws.ServeWS)

	return r
}
