package app

import (
	"context"

	"github.com/google/uuid"

	"studyquiz-service/internal/domain"
	"studyquiz-service/internal/quiztext"
)

// AttemptRepository abstracts how attempts are stored (in-memory, Redis, etc).
type AttemptRepository interface {
	Put(attempt *Attempt)
	Get(id string) (*Attempt, bool)
	Delete(id string)
}

// QuizRepository loads stored quiz content (from cache/backing store).
type QuizRepository interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
}

// AttemptService contains the quiz-taking use cases: start an attempt from
// raw text or a stored quiz, step through questions, score answers, and
// report results.
type AttemptService struct {
	attempts AttemptRepository
	quizzes  QuizRepository
}

func NewAttemptService(attempts AttemptRepository, quizzes QuizRepository) *AttemptService {
	return &AttemptService{attempts: attempts, quizzes: quizzes}
}

// StartFromText parses a quiz document and opens a new attempt over it.
// Per-block diagnostics from a partially-valid document are returned so the
// caller can surface them; they do not fail the start.
func (s *AttemptService) StartFromText(_ context.Context, userID, text string, shuffle bool) (*Attempt, []string, error) {
	questions, diagnostics, err := quiztext.Parse(text)
	if err != nil {
		return nil, diagnostics, err
	}
	if shuffle {
		questions = quiztext.Shuffle(questions)
	}
	attempt := NewAttempt(uuid.NewString(), userID, questions)
	s.attempts.Put(attempt)
	return attempt, diagnostics, nil
}

// StartFromQuiz opens a new attempt over a stored quiz.
func (s *AttemptService) StartFromQuiz(ctx context.Context, userID, quizID string, shuffle bool) (*Attempt, error) {
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	questions := quiz.Questions
	if shuffle {
		questions = quiztext.Shuffle(questions)
	}
	attempt := NewAttempt(uuid.NewString(), userID, questions)
	s.attempts.Put(attempt)
	return attempt, nil
}

// CurrentQuestion returns the question at the attempt's cursor.
func (s *AttemptService) CurrentQuestion(attemptID string) (domain.QuestionView, error) {
	attempt, ok := s.attempts.Get(attemptID)
	if !ok {
		return domain.QuestionView{}, domain.ErrAttemptNotFound
	}
	return attempt.current()
}

// SubmitAnswer checks the letter against the current question, updates the
// score, and advances the cursor.
func (s *AttemptService) SubmitAnswer(attemptID, letter string) (domain.AnswerResult, error) {
	attempt, ok := s.attempts.Get(attemptID)
	if !ok {
		return domain.AnswerResult{}, domain.ErrAttemptNotFound
	}
	return attempt.submit(letter)
}

// Results returns the attempt's scoreboard.
func (s *AttemptService) Results(attemptID string) (domain.AttemptSummary, error) {
	attempt, ok := s.attempts.Get(attemptID)
	if !ok {
		return domain.AttemptSummary{}, domain.ErrAttemptNotFound
	}
	return attempt.summary(), nil
}

// Restart rewinds the attempt to its first question with a zero score. The
// question order from the original start is kept.
func (s *AttemptService) Restart(attemptID string) error {
	attempt, ok := s.attempts.Get(attemptID)
	if !ok {
		return domain.ErrAttemptNotFound
	}
	attempt.restart()
	return nil
}

// Reset discards the attempt entirely.
func (s *AttemptService) Reset(attemptID string) {
	s.attempts.Delete(attemptID)
}

// Get exposes an attempt to collaborators that need its metadata (owner,
// elapsed time) when recording history.
func (s *AttemptService) Get(attemptID string) (*Attempt, bool) {
	return s.attempts.Get(attemptID)
}
