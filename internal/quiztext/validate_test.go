package quiztext

import "testing"

func TestValidateNormalizesLetters(t *testing.T) {
	q, reason := validateBlock(rawBlock{
		question: "  Which way is up?  ",
		choices:  "a: north\nb: south",
		answer:   "b",
	})
	if reason != "" {
		t.Fatalf("unexpected rejection: %s", reason)
	}
	if q.Text != "Which way is up?" {
		t.Fatalf("question not trimmed: %q", q.Text)
	}
	if q.Choices[0].Letter != "A" || q.Choices[1].Letter != "B" {
		t.Fatalf("letters not uppercased: %+v", q.Choices)
	}
	if q.Answer != "B" {
		t.Fatalf("answer not uppercased: %q", q.Answer)
	}
}

func TestValidateDuplicateLettersKeptInOrder(t *testing.T) {
	q, reason := validateBlock(rawBlock{
		question: "Q?",
		choices:  "A: first\nA: second\nB: other",
		answer:   "A",
	})
	if reason != "" {
		t.Fatalf("duplicates are not a rejection: %s", reason)
	}
	if len(q.Choices) != 3 || q.Choices[0].Text != "first" || q.Choices[1].Text != "second" {
		t.Fatalf("duplicate order not preserved: %+v", q.Choices)
	}
}

func TestValidateMissingQuestionText(t *testing.T) {
	_, reason := validateBlock(rawBlock{question: "  \n ", choices: "A: a\nB: b", answer: "A"})
	if reason != "missing question text" {
		t.Fatalf("unexpected reason: %q", reason)
	}
}

func TestValidateAnswerWithTrailingContent(t *testing.T) {
	q, reason := validateBlock(rawBlock{
		question: "Q?",
		choices:  "A: a\nB: b",
		answer:   "B) because it is correct",
	})
	if reason != "" {
		t.Fatalf("unexpected rejection: %s", reason)
	}
	if q.Answer != "B" {
		t.Fatalf("expected standalone letter extracted, got %q", q.Answer)
	}
}

func TestValidateChecksRunInOrder(t *testing.T) {
	// A block failing several checks reports the earliest one.
	_, reason := validateBlock(rawBlock{question: "", choices: "A: only", answer: "E"})
	if reason != "missing question text" {
		t.Fatalf("expected earliest failure first, got %q", reason)
	}
}
