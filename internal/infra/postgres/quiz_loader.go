package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"studyquiz-service/internal/domain"
	"studyquiz-service/internal/quiztext"
)

// QuizLoader loads raw quiz documents from Postgres and runs them through
// the parsing pipeline. Quizzes are stored as the same delimited text format
// users paste or upload, so one parser serves every source.
type QuizLoader struct {
	pool *pgxpool.Pool
}

func NewQuizLoader(pool *pgxpool.Pool) *QuizLoader {
	return &QuizLoader{pool: pool}
}

func (l *QuizLoader) LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	var (
		title string
		body  string
	)
	err := l.pool.QueryRow(ctx, `SELECT title, body FROM quizzes WHERE id=$1`, quizID).Scan(&title, &body)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load quiz: %w", err)
	}

	questions, _, err := quiztext.Parse(body)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("parse quiz %s: %w", quizID, err)
	}
	return domain.Quiz{ID: quizID, Title: title, Questions: questions}, nil
}
