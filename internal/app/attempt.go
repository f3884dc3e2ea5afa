package app

import (
	"math"
	"strings"
	"sync"
	"time"

	"studyquiz-service/internal/domain"
)

// Attempt is one user's walk through a quiz: a fixed question sequence plus
// a cursor and a score. The question slice is owned by the attempt and never
// mutated after creation.
type Attempt struct {
	id        string
	userID    string
	questions []domain.Question
	createdAt time.Time
	now       func() time.Time

	mu     sync.Mutex
	cursor int
	score  int
}

// NewAttempt is exported for infrastructure layers that need to seed attempts.
func NewAttempt(id, userID string, questions []domain.Question) *Attempt {
	return newAttemptWithClock(id, userID, questions, time.Now)
}

// NewAttemptWithClock is test-only for deterministic timestamps.
func NewAttemptWithClock(id, userID string, questions []domain.Question, now func() time.Time) *Attempt {
	return newAttemptWithClock(id, userID, questions, now)
}

func newAttemptWithClock(id, userID string, questions []domain.Question, now func() time.Time) *Attempt {
	return &Attempt{
		id:        id,
		userID:    userID,
		questions: questions,
		createdAt: now(),
		now:       now,
	}
}

// ID returns the attempt identifier.
func (a *Attempt) ID() string { return a.id }

// UserID returns the owning user, empty for anonymous attempts.
func (a *Attempt) UserID() string { return a.userID }

// Total returns the number of questions in the attempt.
func (a *Attempt) Total() int { return len(a.questions) }

// Elapsed reports how long the attempt has been running.
func (a *Attempt) Elapsed() time.Duration {
	return a.now().Sub(a.createdAt)
}

func (a *Attempt) current() (domain.QuestionView, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cursor >= len(a.questions) {
		return domain.QuestionView{}, domain.ErrQuizFinished
	}
	q := a.questions[a.cursor]
	return domain.QuestionView{
		Text:     q.Text,
		Choices:  q.Choices,
		Position: a.cursor + 1,
		Total:    len(a.questions),
		Score:    a.score,
	}, nil
}

func (a *Attempt) submit(letter string) (domain.AnswerResult, error) {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if len(letter) != 1 || letter[0] < 'A' || letter[0] > 'D' {
		return domain.AnswerResult{}, domain.ErrInvalidAnswer
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cursor >= len(a.questions) {
		return domain.AnswerResult{}, domain.ErrQuizFinished
	}
	q := a.questions[a.cursor]
	correct := letter == q.Answer
	if correct {
		a.score++
	}
	a.cursor++

	return domain.AnswerResult{
		Correct:       correct,
		CorrectAnswer: q.Answer,
		Score:         a.score,
		HasMore:       a.cursor < len(a.questions),
	}, nil
}

func (a *Attempt) summary() domain.AttemptSummary {
	a.mu.Lock()
	defer a.mu.Unlock()

	total := len(a.questions)
	percentage := 0.0
	if total > 0 {
		percentage = math.Round(float64(a.score)/float64(total)*1000) / 10
	}
	return domain.AttemptSummary{Score: a.score, Total: total, Percentage: percentage}
}

func (a *Attempt) restart() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cursor = 0
	a.score = 0
}
