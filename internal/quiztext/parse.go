package quiztext

import (
	"fmt"
	"os"
	"strings"

	"studyquiz-service/internal/domain"
)

// maxShownDiagnostics caps how many per-block reasons appear in a
// NoValidQuestionsError message; the rest are summarized as a count.
const maxShownDiagnostics = 5

// NoValidQuestionsError is returned when blocks were found but every one of
// them failed validation. It carries the full diagnostic list in document
// order.
type NoValidQuestionsError struct {
	Diagnostics []string
}

func (e *NoValidQuestionsError) Error() string {
	shown := e.Diagnostics
	suppressed := 0
	if len(shown) > maxShownDiagnostics {
		suppressed = len(shown) - maxShownDiagnostics
		shown = shown[:maxShownDiagnostics]
	}
	msg := "no valid questions found: " + strings.Join(shown, "; ")
	if suppressed > 0 {
		msg += fmt.Sprintf(" (and %d more)", suppressed)
	}
	return msg
}

// Parse converts a quiz document into validated questions in document order.
// Individual malformed blocks are recovered locally and reported as
// diagnostics ("block N: reason", 1-based); the parse only fails when the
// input is empty, contains no delimited blocks, or yields zero valid
// questions. Parse holds no state between calls.
func Parse(text string) ([]domain.Question, []string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil, domain.ErrEmptyInput
	}

	blocks := extractBlocks(text)
	if len(blocks) == 0 {
		return nil, nil, domain.ErrNoBlocksFound
	}

	var (
		questions   []domain.Question
		diagnostics []string
	)
	for i, block := range blocks {
		q, reason := validateBlock(block)
		if reason != "" {
			diagnostics = append(diagnostics, fmt.Sprintf("block %d: %s", i+1, reason))
			continue
		}
		questions = append(questions, q)
	}

	if len(questions) == 0 {
		return nil, diagnostics, &NoValidQuestionsError{Diagnostics: diagnostics}
	}
	return questions, diagnostics, nil
}

// ParseFile reads the file as UTF-8 text and parses it. Filesystem failures
// keep their cause (os.ErrNotExist, os.ErrPermission) in the wrap chain so
// callers can tell them apart from content errors.
func ParseFile(path string) ([]domain.Question, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read quiz file: %w", err)
	}
	return Parse(string(data))
}
