package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const parseFixture = `"""QUESTION"""
What is 2+2?
"""CHOICES"""
A: 3
B: 4
"""ANSWER"""
B

"""QUESTION"""
Broken block
"""CHOICES"""
A: only one
"""ANSWER"""
A`

func TestParseCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.txt")
	if err := os.WriteFile(path, []byte(parseFixture), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cmd := NewParseCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path, "--answers"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	got := out.String()
	for _, want := range []string{"1 question(s) parsed", "What is 2+2?", "answer: B", "1 block(s) skipped", "block 2:"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}

func TestParseCmdMissingFile(t *testing.T) {
	cmd := NewParseCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "nope.txt")})

	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestParseCmdNoValidQuestions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.txt")
	if err := os.WriteFile(path, []byte("no markers"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cmd := NewParseCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{path})

	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for document without blocks")
	}
}
