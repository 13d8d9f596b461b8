package main

import (
	"io"
	"log/slog"
	"strings"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSummarizeCountsShellAndDemoLines(t *testing.T) {
	transcript := strings.Join([]string{
		"Welcome to MyOS Shell! Type 'help' for commands.",
		"myos> demo",
		"Starting multitasking demo...",
		"Task A: 0",
		"Task B: 0",
		"Task A: 1",
		"myos> tasks",
	}, "\n")

	s := summarize(strings.NewReader(transcript), discardLogger())

	if s.shellCommands != 2 {
		t.Fatalf("shellCommands = %d, want 2", s.shellCommands)
	}
	if s.demoTicksA != 2 {
		t.Fatalf("demoTicksA = %d, want 2", s.demoTicksA)
	}
	if s.demoTicksB != 1 {
		t.Fatalf("demoTicksB = %d, want 1", s.demoTicksB)
	}
	if s.panics != 0 {
		t.Fatalf("panics = %d, want 0", s.panics)
	}
}

func TestSummarizeParsesPanicLine(t *testing.T) {
	line := "*** kernel panic: page fault (vector 0xe, error 0x0) at eip=0x00101234 ***"
	s := summarize(strings.NewReader(line), discardLogger())
	if s.panics != 1 {
		t.Fatalf("panics = %d, want 1", s.panics)
	}
}

func TestPanicLineRegexRejectsGarbage(t *testing.T) {
	if panicLine.MatchString("not a panic line") {
		t.Fatal("regex should not match unrelated text")
	}
}
