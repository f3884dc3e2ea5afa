// Package quiztext parses loosely-structured quiz documents into validated
// multiple-choice questions. Extraction and validation are split on purpose:
// the extractor only delimits blocks, so a malformed block is diagnosed on
// its own instead of aborting the whole parse.
package quiztext

import (
	"regexp"
	"strings"
)

// Section markers. Matched case-insensitively, but the three kinds are
// distinguished so block boundaries stay exact.
const (
	questionMarker = `"""QUESTION"""`
	choicesMarker  = `"""CHOICES"""`
	answerMarker   = `"""ANSWER"""`
)

var markerRe = regexp.MustCompile(`(?i)"""(QUESTION|CHOICES|ANSWER)"""`)

type markerKind int

const (
	kindQuestion markerKind = iota
	kindChoices
	kindAnswer
)

type marker struct {
	kind  markerKind
	start int
	end   int
}

// rawBlock is one delimited question/choices/answer triple. It carries raw
// spans only; all content checks happen in the validator.
type rawBlock struct {
	question string
	choices  string
	answer   string
}

// extractBlocks scans text for marker-delimited triples in document order.
// A triple is emitted only for a consecutive QUESTION, CHOICES, ANSWER
// marker run. Every span stops at the next marker of any kind, so a block
// missing its tail can never swallow the block after it.
func extractBlocks(text string) []rawBlock {
	locs := markerRe.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}

	markers := make([]marker, 0, len(locs))
	for _, loc := range locs {
		markers = append(markers, marker{
			kind:  kindOf(text[loc[2]:loc[3]]),
			start: loc[0],
			end:   loc[1],
		})
	}

	var blocks []rawBlock
	for i := 0; i < len(markers); {
		if markers[i].kind != kindQuestion ||
			i+2 >= len(markers) ||
			markers[i+1].kind != kindChoices ||
			markers[i+2].kind != kindAnswer {
			i++
			continue
		}

		answerEnd := len(text)
		if i+3 < len(markers) {
			answerEnd = markers[i+3].start
		}
		blocks = append(blocks, rawBlock{
			question: text[markers[i].end:markers[i+1].start],
			choices:  text[markers[i+1].end:markers[i+2].start],
			answer:   firstLine(text[markers[i+2].end:answerEnd]),
		})
		i += 3
	}
	return blocks
}

func kindOf(name string) markerKind {
	switch strings.ToUpper(name) {
	case "QUESTION":
		return kindQuestion
	case "CHOICES":
		return kindChoices
	default:
		return kindAnswer
	}
}

// firstLine returns the first non-blank line of the span. The answer is a
// single letter with ignorable trailing content; anything on later lines is
// not part of the answer.
func firstLine(span string) string {
	for _, line := range strings.Split(span, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
