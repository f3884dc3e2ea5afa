package app

import (
	"testing"
	"time"

	"studyquiz-service/internal/domain"
)

func TestAttemptElapsed(t *testing.T) {
	clock := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }

	attempt := NewAttemptWithClock("a1", "u1", []domain.Question{
		{Text: "Q?", Choices: []domain.Choice{{Letter: "A", Text: "x"}, {Letter: "B", Text: "y"}}, Answer: "A"},
	}, now)

	clock = clock.Add(90 * time.Second)
	if got := attempt.Elapsed(); got != 90*time.Second {
		t.Fatalf("elapsed = %v, want 90s", got)
	}
}

func TestAttemptSummaryEmpty(t *testing.T) {
	attempt := NewAttempt("a1", "", nil)
	s := attempt.summary()
	if s.Score != 0 || s.Total != 0 || s.Percentage != 0 {
		t.Fatalf("unexpected empty summary: %+v", s)
	}
}

func TestAttemptPercentageRounding(t *testing.T) {
	questions := []domain.Question{
		{Text: "1", Choices: []domain.Choice{{Letter: "A", Text: "x"}, {Letter: "B", Text: "y"}}, Answer: "A"},
		{Text: "2", Choices: []domain.Choice{{Letter: "A", Text: "x"}, {Letter: "B", Text: "y"}}, Answer: "A"},
		{Text: "3", Choices: []domain.Choice{{Letter: "A", Text: "x"}, {Letter: "B", Text: "y"}}, Answer: "A"},
	}
	attempt := NewAttempt("a1", "", questions)
	if _, err := attempt.submit("A"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := attempt.submit("B"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := attempt.submit("B"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	// 1/3 rounds to one decimal place.
	if s := attempt.summary(); s.Percentage != 33.3 {
		t.Fatalf("percentage = %v, want 33.3", s.Percentage)
	}
}
