package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/pinkytype/internal/model"
	statsPkg "github.com/verte-zerg/pinkytype/internal/stats"
)

type boardState struct {
	cfg     model.GameConfig
	entries []model.LeaderboardEntry
	loading bool
	err     string
}

func (m *Model) openLeaderboard(cfg model.GameConfig) tea.Cmd {
	m.screen = screenLeaderboard
	return m.loadScores(cfg.Normalized())
}

func (m *Model) loadScores(cfg model.GameConfig) tea.Cmd {
	m.board = boardState{cfg: cfg, loading: true}
	gw, timeout, category := m.gw, m.timeout, cfg.CategoryKey()
	return func() tea.Msg {
		ctx, cancel := contextWithTimeout(timeout)
		defer cancel()
		entries, err := gw.Scores(ctx, category)
		return scoresMsg{category: category, entries: entries, err: err}
	}
}

func (m *Model) handleScores(msg scoresMsg) {
	if msg.category != m.board.cfg.CategoryKey() {
		return
	}
	m.board.loading = false
	if msg.err != nil {
		m.logger.Warn("failed to load leaderboard", "category", msg.category, "error", msg.err)
		m.board.err = submissionError(msg.err)
		return
	}
	m.board.entries = msg.entries
}

func (m *Model) updateLeaderboard(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.screen = screenLobby
		return nil
	case tea.KeyLeft:
		return m.loadScores(cycleMode(m.board.cfg, -1))
	case tea.KeyRight:
		return m.loadScores(cycleMode(m.board.cfg, 1))
	case tea.KeyUp:
		return m.loadScores(cycleValue(m.board.cfg, 1))
	case tea.KeyDown:
		return m.loadScores(cycleValue(m.board.cfg, -1))
	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "q":
			return tea.Quit
		case "r":
			return m.loadScores(m.board.cfg)
		}
	}
	return nil
}

func (m *Model) viewLeaderboard() string {
	var body string
	switch {
	case m.board.loading:
		body = pendingStyle.Render("Loading " + m.board.cfg.CategoryKey() + "...")
	case m.board.err != "":
		body = warnStyle.Render("Error: " + m.board.err)
	default:
		var b strings.Builder
		if err := statsPkg.RenderLeaderboard(&b, m.board.cfg.CategoryKey(), m.board.entries); err != nil {
			body = warnStyle.Render("Error: " + err.Error())
		} else {
			body = strings.TrimRight(b.String(), "\n")
		}
	}
	help := footerStyle.Render("←/→ mode · ↑/↓ length · r reload · esc back")
	return strings.Join([]string{body, "", help}, "\n")
}
