package tui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/pinkytype/internal/engine"
	"github.com/verte-zerg/pinkytype/internal/model"
)

const (
	visibleTextLines = 3
	wordsBehind      = 30
	wordsAhead       = 60
)

func (m *Model) updatePlaying(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.ctrl.Stop()
		m.events = nil
		m.flashing = false
		m.celebrate = 0
		m.screen = screenLobby
		return nil
	case tea.KeyTab:
		return m.startSession()
	case tea.KeyEnter:
		if m.ctrl.Config().Mode != model.ModeZen {
			return nil
		}
		m.ctrl.End()
	case tea.KeyBackspace, tea.KeyDelete:
		m.ctrl.Press(engine.Key{Kind: engine.KeyBackspace})
	case tea.KeySpace:
		m.ctrl.Press(engine.Key{Kind: engine.KeySpace})
	case tea.KeyRunes:
		if msg.Alt || msg.Paste {
			return nil
		}
		for _, r := range msg.Runes {
			if !m.ctrl.Active() {
				break
			}
			m.ctrl.Press(engine.Char(r))
		}
	default:
		return nil
	}
	return tea.Batch(m.drainEvents()...)
}

func (m *Model) viewPlaying() string {
	e := m.ctrl.Engine()
	words := e.Words()
	if len(words) == 0 {
		return ""
	}
	current := e.CurrentWordIndex()
	from := max(0, current-wordsBehind)
	to := min(len(words), current+wordsAhead)
	if from >= to {
		return m.renderHUD()
	}
	history := make([]string, 0, max(0, current-from))
	for i := from; i < current && i < to; i++ {
		typed, _ := e.History(i)
		history = append(history, typed)
	}
	styled := buildStyledRunes(words[from:to], history, e.Input())

	contentWidth := int(float64(m.width) * 0.70)
	if m.width == 0 {
		contentWidth = 0
	} else if contentWidth < 1 {
		contentWidth = 1
	}
	lines, cursorLine := wrapStyledRunes(styled, contentWidth)
	text := strings.Join(visibleLines(lines, cursorLine, visibleTextLines), "\n")
	if contentWidth > 0 {
		text = lipgloss.NewStyle().Width(contentWidth).Render(text)
	}

	parts := []string{m.renderHUD(), "", text}
	if m.celebrate > 0 {
		parts = append(parts, "", goodStyle.Render(fmt.Sprintf("%d perfect words in a row!", m.celebrate)))
	}
	return strings.Join(parts, "\n")
}

// renderHUD shows live WPM, errors and the countdown or word progress.
func (m *Model) renderHUD() string {
	segments := []string{fmt.Sprintf("%d WPM", int(math.Round(m.ctrl.LiveWPM())))}
	cfg := m.ctrl.Config()
	switch cfg.Mode {
	case model.ModeTime:
		segments = append(segments,
			fmt.Sprintf("%d errors", m.ctrl.Engine().Chars().Incorrect),
			fmt.Sprintf("%.1fs", m.ctrl.Remaining().Seconds()))
	case model.ModeWords:
		done, target := m.ctrl.Progress()
		segments = append(segments,
			fmt.Sprintf("%d errors", m.ctrl.Engine().Chars().Incorrect),
			fmt.Sprintf("%d/%d", done, target))
	}
	return titleStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) renderFooter() string {
	var segments []string
	switch m.screen {
	case screenPlaying:
		help := "esc lobby · tab restart"
		if m.ctrl.Config().Mode == model.ModeZen {
			help += " · enter finish"
		}
		if m.flashing {
			return incorrectStyle.Render("Too many extra characters · " + help)
		}
		segments = append(segments, help)
	case screenLobby:
		if m.hasLast {
			segments = append(segments, fmt.Sprintf("Last %.1f WPM · %.1f%%", m.lastWPM, m.lastAcc))
		}
		if m.allDuration > 0 {
			segments = append(segments, fmt.Sprintf("All-time %.1f WPM · %.1f%%", m.allWPM, m.allAcc))
		}
	}
	if len(segments) == 0 {
		return ""
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}
