package quiztext

import (
	"math/rand"

	"studyquiz-service/internal/domain"
)

// Shuffle returns a new slice holding the same questions in a uniformly
// random order. The input is never modified; the global rand source is
// locked internally, so concurrent shuffles are safe.
func Shuffle(questions []domain.Question) []domain.Question {
	shuffled := make([]domain.Question, len(questions))
	copy(shuffled, questions)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}
