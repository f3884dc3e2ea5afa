package domain

import "time"

// Choice is one lettered answer option of a multiple-choice question.
// Letters are uppercase A-D; insertion order from the source text is kept.
type Choice struct {
	Letter string `json:"letter"`
	Text   string `json:"text"`
}

// Question is a validated multiple-choice question. Invariants: non-empty
// text, at least two choices with non-empty text, answer letter present
// among the choices.
type Question struct {
	Text    string   `json:"question"`
	Choices []Choice `json:"choices"`
	Answer  string   `json:"answer"`
}

// Letters returns the choice letters in insertion order.
func (q Question) Letters() []string {
	letters := make([]string, 0, len(q.Choices))
	for _, c := range q.Choices {
		letters = append(letters, c.Letter)
	}
	return letters
}

// HasLetter reports whether the letter is one of the question's choices.
func (q Question) HasLetter(letter string) bool {
	for _, c := range q.Choices {
		if c.Letter == letter {
			return true
		}
	}
	return false
}

// Quiz is a stored, ordered set of validated questions.
type Quiz struct {
	ID        string     `json:"id"`
	Title     string     `json:"title,omitempty"`
	Questions []Question `json:"questions"`
}

// QuestionView is what players see: the prompt and choices, never the answer.
type QuestionView struct {
	Text     string   `json:"question"`
	Choices  []Choice `json:"choices"`
	Position int      `json:"current"` // 1-based
	Total    int      `json:"total"`
	Score    int      `json:"score"`
}

// AnswerResult summarizes the outcome of one submitted answer.
type AnswerResult struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
	Score         int    `json:"score"`
	HasMore       bool   `json:"hasMore"`
}

// AttemptSummary is the final scoreboard for one quiz attempt.
type AttemptSummary struct {
	Score      int     `json:"score"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// User is a registered account.
type User struct {
	ID        int64
	Email     string
	CreatedAt time.Time
}

// HistoryEntry is one completed attempt in a user's quiz history.
type HistoryEntry struct {
	Score       int       `json:"score"`
	Total       int       `json:"total"`
	Percentage  float64   `json:"percentage"`
	Duration    string    `json:"duration,omitempty"`
	CompletedAt time.Time `json:"completedAt"`
}
