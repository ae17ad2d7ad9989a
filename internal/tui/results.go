package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/pinkytype/internal/leaderboard"
	"github.com/verte-zerg/pinkytype/internal/model"
	"github.com/verte-zerg/pinkytype/internal/names"
)

type resultStatus int

const (
	resultIdle resultStatus = iota
	resultChecking
	resultPrompt
	resultCheckingName
	resultNewRecord
	resultNoRecord
	resultError
)

type resultsState struct {
	status resultStatus
	res    leaderboard.Result
	err    string
}

// beginSubmission picks the first submission step for final stats.
func (m *Model) beginSubmission(final model.SessionStats) tea.Cmd {
	if !leaderboard.Eligible(m.ctrl.Config(), final) {
		m.results.status = resultIdle
		return nil
	}
	if m.name == "" {
		m.results.status = resultPrompt
		m.nameErr = ""
		return m.focusNameInput()
	}
	return m.runSubmission()
}

func (m *Model) runSubmission() tea.Cmd {
	final, ok := m.ctrl.Stats()
	if !ok {
		return nil
	}
	m.results.status = resultChecking
	gw, name, cfg, timeout, gen := m.gw, m.name, m.ctrl.Config(), m.timeout, m.ctrl.Generation()
	return func() tea.Msg {
		ctx, cancel := contextWithTimeout(timeout)
		defer cancel()
		res, err := leaderboard.Submit(ctx, gw, name, cfg, final)
		return submitMsg{gen: gen, res: res, err: err}
	}
}

func (m *Model) handleSubmit(msg submitMsg) tea.Cmd {
	if msg.gen != m.ctrl.Generation() || m.screen != screenResults {
		return nil
	}
	m.results.res = msg.res
	if msg.err != nil {
		m.logger.Warn("score submission failed", "category", msg.res.Category, "error", msg.err)
		m.results.status = resultError
		m.results.err = submissionError(msg.err)
		return nil
	}
	switch msg.res.Status {
	case leaderboard.StatusNewRecord:
		m.results.status = resultNewRecord
	case leaderboard.StatusNoRecord:
		m.results.status = resultNoRecord
	case leaderboard.StatusNeedName:
		m.results.status = resultPrompt
		return m.focusNameInput()
	default:
		m.results.status = resultIdle
	}
	return nil
}

func submissionError(err error) string {
	if errors.Is(err, leaderboard.ErrTransport) {
		return "Leaderboard unavailable. Your stats are still shown above."
	}
	return err.Error()
}

func (m *Model) updateResults(msg tea.KeyMsg) tea.Cmd {
	if m.results.status == resultPrompt {
		switch msg.Type {
		case tea.KeyEsc:
			m.nameInput.Blur()
			m.results.status = resultIdle
			return nil
		case tea.KeyEnter:
			candidate, err := names.Validate(m.nameInput.Value())
			if err != nil {
				m.nameErr = err.Error()
				return nil
			}
			m.nameErr = ""
			m.results.status = resultCheckingName
			return m.claimCmd(candidate)
		}
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return cmd
	}

	switch msg.Type {
	case tea.KeyEnter, tea.KeyTab:
		return m.startSession()
	case tea.KeyEsc:
		m.screen = screenLobby
		return nil
	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "q":
			return tea.Quit
		case "l":
			return m.openLeaderboard(m.ctrl.Config())
		}
	}
	return nil
}

func (m *Model) viewResults() string {
	final, _ := m.ctrl.Stats()
	heading := "Session Complete!"
	if m.ctrl.Config().Mode == model.ModeTime {
		heading = "Time's Up!"
	}
	lines := []string{
		titleStyle.Render(heading),
		"",
		fmt.Sprintf("WPM       %.0f", final.WPM),
		fmt.Sprintf("Accuracy  %.1f%%", final.Accuracy),
		fmt.Sprintf("Time      %.1fs", final.TimeElapsed),
		fmt.Sprintf("Chars     %d / %d", final.Chars.Correct, final.Chars.Total),
		fmt.Sprintf("Errors    %d", final.Chars.Incorrect),
		"",
	}
	lines = append(lines, m.renderSubmission()...)
	lines = append(lines, "", footerStyle.Render("enter again · l leaderboard · esc lobby · q quit"))
	return strings.Join(lines, "\n")
}

func (m *Model) renderSubmission() []string {
	switch m.results.status {
	case resultChecking:
		return []string{pendingStyle.Render("Checking for personal best...")}
	case resultCheckingName:
		return []string{pendingStyle.Render("Checking username...")}
	case resultPrompt:
		out := []string{currentWordStyle.Render("Set a username to save your score!"), m.nameInput.View()}
		if m.nameErr != "" {
			out = append(out, incorrectStyle.Render(m.nameErr))
		}
		return out
	case resultNewRecord:
		return []string{goodStyle.Render("New Personal Record! Your score has been saved.")}
	case resultNoRecord:
		return []string{pendingStyle.Render(fmt.Sprintf("Personal best for %s is %d WPM.", m.results.res.Category, m.results.res.PersonalBest))}
	case resultError:
		return []string{warnStyle.Render("Error: " + m.results.err)}
	default:
		return nil
	}
}
