package quiztext

import (
	"fmt"
	"regexp"
	"strings"

	"studyquiz-service/internal/domain"
)

var (
	// One choice per line: "<letter>: <text>". Non-matching lines inside the
	// choices span are stray text and skipped without complaint.
	choiceRe = regexp.MustCompile(`(?im)^[ \t]*([A-D]):[ \t]*(.*)$`)
	// Standalone answer letter anywhere on the answer line.
	answerRe = regexp.MustCompile(`(?i)\b([A-D])\b`)
)

// validateBlock normalizes one raw triple into a Question, or returns the
// reason it was rejected. Checks run in a fixed order so diagnostics are
// stable: question text, choice count, choice text, answer letter, answer
// membership.
func validateBlock(b rawBlock) (domain.Question, string) {
	question := strings.TrimSpace(b.question)
	if question == "" {
		return domain.Question{}, "missing question text"
	}

	choices := parseChoices(b.choices)
	if len(choices) < 2 {
		return domain.Question{}, "fewer than two choices"
	}
	for _, c := range choices {
		if c.Text == "" {
			return domain.Question{}, fmt.Sprintf("choice %s has no text", c.Letter)
		}
	}

	m := answerRe.FindStringSubmatch(b.answer)
	if m == nil {
		return domain.Question{}, "no valid answer letter found"
	}
	answer := strings.ToUpper(m[1])

	q := domain.Question{Text: question, Choices: choices, Answer: answer}
	if !q.HasLetter(answer) {
		return domain.Question{}, fmt.Sprintf("answer '%s' is not among the parsed choices", answer)
	}
	return q, ""
}

// parseChoices extracts (letter, text) pairs from the choices span. Letters
// are normalized to uppercase and insertion order is preserved; duplicate
// letters are kept as found.
func parseChoices(span string) []domain.Choice {
	matches := choiceRe.FindAllStringSubmatch(span, -1)
	if len(matches) == 0 {
		return nil
	}
	choices := make([]domain.Choice, 0, len(matches))
	for _, m := range matches {
		choices = append(choices, domain.Choice{
			Letter: strings.ToUpper(m[1]),
			Text:   strings.TrimSpace(m[2]),
		})
	}
	return choices
}
