package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/pinkytype/internal/engine"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
	cursor  bool
}

// buildStyledRunes renders words as styled runes. history holds what was
// typed for the leading committed words, so the current word is
// words[len(history)] and input is its uncommitted text.
func buildStyledRunes(words, history []string, input string) []styledRune {
	current := len(history)
	out := make([]styledRune, 0, len(words)*6)
	cursorOnSpace := false
	for i, word := range words {
		if i > 0 {
			out = append(out, spaceRune(cursorOnSpace))
			cursorOnSpace = false
		}
		switch {
		case i < current:
			for _, cm := range engine.Classify(word, history[i], true) {
				out = append(out, markRune(cm, false, false))
			}
		case i == current:
			cursor := len([]rune(input))
			cursorOnSpace = cursor >= len([]rune(word))
			for j, cm := range engine.Classify(word, input, false) {
				out = append(out, markRune(cm, true, j == cursor))
			}
		default:
			out = appendPending(out, word)
		}
	}
	if cursorOnSpace {
		out = append(out, spaceRune(true))
	}
	return out
}

func appendPending(out []styledRune, word string) []styledRune {
	for _, r := range word {
		out = append(out, styledRune{
			s:     pendingStyle.Render(string(r)),
			width: runewidth.RuneWidth(r),
		})
	}
	return out
}

func spaceRune(cursor bool) styledRune {
	style := pendingStyle
	if cursor {
		style = cursorStyle
	}
	return styledRune{s: style.Render(" "), width: 1, isSpace: true, cursor: cursor}
}

func markRune(cm engine.CharMark, currentWord, cursor bool) styledRune {
	style := pendingStyle
	switch cm.Mark {
	case engine.Correct:
		style = correctStyle
	case engine.Incorrect:
		style = incorrectStyle
	case engine.Extra:
		style = extraStyle
	case engine.Missed:
		style = missedStyle
	case engine.Untyped:
		if currentWord {
			style = currentWordStyle
		}
	}
	if cursor {
		style = style.Underline(true)
	}
	return styledRune{
		s:      style.Render(string(cm.Rune)),
		width:  runewidth.RuneWidth(cm.Rune),
		cursor: cursor,
	}
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks runes into lines of at most width cells, preferring
// to break at spaces. It returns the lines and the index of the line holding
// the cursor, or -1.
func wrapStyledRunes(runes []styledRune, width int) ([]string, int) {
	if width <= 0 {
		cursorLine := -1
		if hasCursor(runes) {
			cursorLine = 0
		}
		return []string{renderStyledRunes(runes)}, cursorLine
	}
	var lines []string
	cursorLine := -1
	emit := func(line []styledRune) {
		if cursorLine == -1 && hasCursor(line) {
			cursorLine = len(lines)
		}
		lines = append(lines, renderStyledRunes(line))
	}

	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				head := line[:lastSpaceIdx]
				if line[lastSpaceIdx].cursor {
					head = line[:lastSpaceIdx+1]
				}
				emit(head)
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				emit(line)
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	emit(line)
	return lines, cursorLine
}

// visibleLines returns at most n lines, keeping the cursor line second from
// the top once enough text has scrolled past.
func visibleLines(lines []string, cursorLine, n int) []string {
	if n <= 0 || len(lines) <= n {
		return lines
	}
	start := 0
	if cursorLine > 0 {
		start = cursorLine - 1
	}
	if start+n > len(lines) {
		start = len(lines) - n
	}
	return lines[start : start+n]
}

func hasCursor(line []styledRune) bool {
	for _, item := range line {
		if item.cursor {
			return true
		}
	}
	return false
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
