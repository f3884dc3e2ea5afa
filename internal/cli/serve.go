package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"studyquiz-service/internal/ai"
	"studyquiz-service/internal/app"
	"studyquiz-service/internal/auth"
	"studyquiz-service/internal/config"
	"studyquiz-service/internal/domain"
	"studyquiz-service/internal/infra/memory"
	pgloader "studyquiz-service/internal/infra/postgres"
	redisinfra "studyquiz-service/internal/infra/redis"
	"studyquiz-service/internal/infra/sqlite"
	transport "studyquiz-service/internal/transport/http"
)

// NewServeCmd builds the CLI subcommand to start the server.
func NewServeCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()
	log := logger.Sugar()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, log, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	attemptTTL := config.TTLDuration(cfg.Redis.TTL, time.Hour)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var loader memory.QuizLoader = memory.NewStaticQuizLoader(sampleQuizzes())
	if pool != nil {
		loader = pgloader.NewQuizLoader(pool)
	}

	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	var quizRepo app.QuizRepository
	if redisClient != nil {
		quizRepo = redisinfra.NewQuizRepository(redisClient, loader, quizTTL)
	} else {
		quizRepo = memory.NewQuizRepository(loader, quizTTL)
	}

	var attemptStore app.AttemptRepository
	if redisClient != nil {
		attemptStore = redisinfra.NewAttemptStore(redisClient, attemptTTL)
	} else {
		attemptStore = memory.NewAttemptStore()
	}
	attempts := app.NewAttemptService(attemptStore, quizRepo)

	store, err := sqlite.Open(ctx, cfg.SQLite.DSN, sqlite.NewKeyCipher(cfg.SQLite.KeySecret))
	if err != nil {
		return err
	}
	defer store.Close()

	authSvc := auth.NewService(cfg.Auth.Secret, config.TTLDuration(cfg.Auth.TokenTTL, 8*time.Hour))
	aiClient := ai.NewClient(log, ai.Options{
		OpenAIBaseURL:    cfg.AI.OpenAIBaseURL,
		AnthropicBaseURL: cfg.AI.AnthropicBaseURL,
		GoogleBaseURL:    cfg.AI.GoogleBaseURL,
		OllamaBaseURL:    cfg.AI.OllamaBaseURL,
	})

	srv := transport.NewServer(log, attempts, store, authSvc, aiClient, cfg.Server.AllowedOrigins, cfg.Quiz.Shuffle)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // generation calls block on the provider
	}

	go func() {
		log.Infow("starting quiz service", "port", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorw("server stopped", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Infow("shutting down server")
	case <-ctx.Done():
		log.Infow("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleQuizzes seeds the static loader when no Postgres is configured.
func sampleQuizzes() map[string]domain.Quiz {
	return map[string]domain.Quiz{
		"quiz-1": {
			ID:    "quiz-1",
			Title: "Warmup",
			Questions: []domain.Question{
				{
					Text: "What is 2 + 2?",
					Choices: []domain.Choice{
						{Letter: "A", Text: "3"},
						{Letter: "B", Text: "4"},
						{Letter: "C", Text: "5"},
						{Letter: "D", Text: "22"},
					},
					Answer: "B",
				},
			},
		},
	}
}
