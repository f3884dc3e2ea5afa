package quiztext

import "testing"

func TestExtractBoundaryStopsAtNextBlock(t *testing.T) {
	// The first block is missing its CHOICES section. Its question span must
	// stop at the next QUESTION marker instead of swallowing the second block.
	doc := `"""QUESTION"""
orphaned question with no choices
"""QUESTION"""
Real question?
"""CHOICES"""
A: yes
B: no
"""ANSWER"""
A
`
	blocks := extractBlocks(doc)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].question != "\nReal question?\n" {
		t.Fatalf("second block swallowed by the first: %q", blocks[0].question)
	}
}

func TestExtractChoicesSpanStopsAtNextMarker(t *testing.T) {
	doc := `"""QUESTION"""
Q1?
"""CHOICES"""
A: yes
"""QUESTION"""
Q2?
"""CHOICES"""
A: up
B: down
"""ANSWER"""
B
`
	// The first block never reaches an ANSWER marker, so only the second
	// block forms a complete triple.
	blocks := extractBlocks(doc)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].question != "\nQ2?\n" {
		t.Fatalf("unexpected question span: %q", blocks[0].question)
	}
}

func TestExtractCaseInsensitiveMarkers(t *testing.T) {
	doc := `"""question"""
Mixed case?
"""Choices"""
A: yes
B: no
"""ANSWER"""
A
`
	blocks := extractBlocks(doc)
	if len(blocks) != 1 {
		t.Fatalf("expected lowercase markers to match, got %d blocks", len(blocks))
	}
}

func TestExtractAnswerIsFirstLineOnly(t *testing.T) {
	doc := `"""QUESTION"""
Q?
"""CHOICES"""
A: yes
B: no
"""ANSWER"""

B
trailing commentary that mentions A
`
	blocks := extractBlocks(doc)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].answer != "B" {
		t.Fatalf("answer span should be the first non-blank line, got %q", blocks[0].answer)
	}
}

func TestExtractNoMarkers(t *testing.T) {
	if blocks := extractBlocks("nothing delimited here"); blocks != nil {
		t.Fatalf("expected nil, got %+v", blocks)
	}
}

func TestExtractMultipleBlocksBackToBack(t *testing.T) {
	doc := `"""QUESTION"""
Q1?
"""CHOICES"""
A: a
B: b
"""ANSWER"""
A
"""QUESTION"""
Q2?
"""CHOICES"""
C: c
D: d
"""ANSWER"""
D extra trailing text
`
	blocks := extractBlocks(doc)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[1].answer != "D extra trailing text" {
		t.Fatalf("trailing answer content should be kept for the validator, got %q", blocks[1].answer)
	}
}
