package tui

import (
	"strings"
	"testing"
)

func TestBuildStyledRunesCursor(t *testing.T) {
	runes := buildStyledRunes([]string{"ab"}, nil, "a")
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != currentWordStyle.Underline(true).Render("b") || !runes[1].cursor {
		t.Fatalf("expected cursor on second rune")
	}
}

func TestBuildStyledRunesCursorOnSpaceWhenWordTyped(t *testing.T) {
	runes := buildStyledRunes([]string{"ab", "cd"}, nil, "ab")
	if len(runes) != 5 {
		t.Fatalf("expected 5 runes, got %d", len(runes))
	}
	if !runes[2].isSpace || !runes[2].cursor || runes[2].s != cursorStyle.Render(" ") {
		t.Fatalf("expected cursor on separating space")
	}
	if runes[3].s != pendingStyle.Render("c") {
		t.Fatalf("expected pending style for next word")
	}
}

func TestBuildStyledRunesMistypeKeepsTarget(t *testing.T) {
	runes := buildStyledRunes([]string{"ab"}, nil, "ax")
	if runes[1].s != incorrectStyle.Render("b") {
		t.Fatalf("expected incorrect style showing the expected rune")
	}
}

func TestBuildStyledRunesExtraAndMissed(t *testing.T) {
	runes := buildStyledRunes([]string{"cat", "dog", "sun"}, []string{"catt", "do"}, "")
	// catt: c a t + extra t, space, d o + missed g, space, s u n
	if len(runes) != 4+1+3+1+3 {
		t.Fatalf("unexpected rune count %d", len(runes))
	}
	if runes[3].s != extraStyle.Render("t") {
		t.Fatalf("expected extra style for overflow rune")
	}
	if runes[7].s != missedStyle.Render("g") {
		t.Fatalf("expected missed style for skipped rune")
	}
	if !runes[9].cursor || runes[9].s != currentWordStyle.Underline(true).Render("s") {
		t.Fatalf("expected cursor at start of current word")
	}
}

func TestWrapStyledRunesTracksCursorLine(t *testing.T) {
	words := []string{"one", "two", "three", "four", "five"}
	runes := buildStyledRunes(words, []string{"one", "two", "three"}, "f")
	lines, cursorLine := wrapStyledRunes(runes, 9)
	if len(lines) < 3 {
		t.Fatalf("expected wrapped lines, got %d", len(lines))
	}
	if cursorLine < 0 || !strings.Contains(lines[cursorLine], correctStyle.Render("f")) {
		t.Fatalf("cursor line %d does not hold the current word: %q", cursorLine, lines)
	}
}

func TestVisibleLinesKeepsCursorNearTop(t *testing.T) {
	lines := []string{"a", "b", "c", "d", "e"}
	got := visibleLines(lines, 3, 3)
	if strings.Join(got, "") != "cde" {
		t.Fatalf("visible = %v", got)
	}
	got = visibleLines(lines, 0, 3)
	if strings.Join(got, "") != "abc" {
		t.Fatalf("visible = %v", got)
	}
	got = visibleLines(lines, 4, 3)
	if strings.Join(got, "") != "cde" {
		t.Fatalf("visible = %v", got)
	}
}
