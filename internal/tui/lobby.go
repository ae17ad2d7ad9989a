package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/pinkytype/internal/model"
	"github.com/verte-zerg/pinkytype/internal/names"
)

var modeOrder = []model.GameMode{model.ModeWords, model.ModeTime, model.ModeZen}

// cycleMode moves to the neighbouring mode with its default value.
func cycleMode(cfg model.GameConfig, step int) model.GameConfig {
	idx := 0
	for i, mode := range modeOrder {
		if mode == cfg.Mode {
			idx = i
		}
	}
	idx = (idx + step + len(modeOrder)) % len(modeOrder)
	mode := modeOrder[idx]
	return model.GameConfig{Mode: mode, Value: mode.DefaultValue()}
}

// cycleValue moves to the neighbouring option of the current mode.
func cycleValue(cfg model.GameConfig, step int) model.GameConfig {
	opts := cfg.Mode.Options()
	if len(opts) == 0 {
		return cfg
	}
	idx := 0
	for i, v := range opts {
		if v == cfg.Value {
			idx = i
		}
	}
	idx = (idx + step + len(opts)) % len(opts)
	return model.GameConfig{Mode: cfg.Mode, Value: opts[idx]}
}

func (m *Model) updateLobby(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		return m.startSession()
	case tea.KeyLeft, tea.KeyShiftTab:
		m.cfg = cycleMode(m.cfg, -1)
	case tea.KeyRight, tea.KeyTab:
		m.cfg = cycleMode(m.cfg, 1)
	case tea.KeyUp:
		m.cfg = cycleValue(m.cfg, 1)
	case tea.KeyDown:
		m.cfg = cycleValue(m.cfg, -1)
	case tea.KeyEsc:
		return tea.Quit
	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "q":
			return tea.Quit
		case "l":
			return m.openLeaderboard(m.cfg)
		case "n":
			return m.openNameEditor()
		}
	}
	return nil
}

func (m *Model) viewLobby() string {
	modes := make([]string, 0, len(modeOrder))
	for _, mode := range modeOrder {
		label := strings.ToUpper(string(mode[:1])) + string(mode[1:])
		if mode == m.cfg.Mode {
			modes = append(modes, selectedStyle.Render(label))
		} else {
			modes = append(modes, pendingStyle.Render(label))
		}
	}
	lines := []string{titleStyle.Render("pinkytype"), "", strings.Join(modes, "   ")}

	if opts := m.cfg.Mode.Options(); len(opts) > 0 {
		values := make([]string, 0, len(opts))
		for _, v := range opts {
			label := fmt.Sprintf("%d", v)
			if m.cfg.Mode == model.ModeTime {
				label += "s"
			}
			if v == m.cfg.Value {
				values = append(values, selectedStyle.Render(label))
			} else {
				values = append(values, pendingStyle.Render(label))
			}
		}
		lines = append(lines, strings.Join(values, "  "))
	} else {
		lines = append(lines, pendingStyle.Render("type freely, enter to finish"))
	}

	name := m.name
	if name == "" {
		name = "not set"
	}
	lines = append(lines,
		"",
		footerStyle.Render("Name: "+name),
		"",
		footerStyle.Render("←/→ mode · ↑/↓ length · enter start · l leaderboard · n name · q quit"),
	)
	return strings.Join(lines, "\n")
}

func (m *Model) openNameEditor() tea.Cmd {
	m.screen = screenName
	m.nameErr = ""
	m.nameBusy = false
	return m.focusNameInput()
}

func (m *Model) focusNameInput() tea.Cmd {
	m.nameInput.SetValue(m.name)
	m.nameInput.CursorEnd()
	return tea.Batch(m.nameInput.Focus(), textinput.Blink)
}

func (m *Model) updateName(msg tea.KeyMsg) tea.Cmd {
	if m.nameBusy {
		return nil
	}
	switch msg.Type {
	case tea.KeyEsc:
		m.nameInput.Blur()
		m.screen = screenLobby
		return nil
	case tea.KeyEnter:
		return m.submitName()
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return cmd
}

// submitName validates the input locally and then checks availability.
func (m *Model) submitName() tea.Cmd {
	candidate, err := names.Validate(m.nameInput.Value())
	if err != nil {
		m.nameErr = err.Error()
		return nil
	}
	m.nameErr = ""
	m.nameBusy = true
	return m.claimCmd(candidate)
}

func (m *Model) claimCmd(candidate string) tea.Cmd {
	gw, current, timeout, gen := m.gw, m.name, m.timeout, m.ctrl.Generation()
	return func() tea.Msg {
		ctx, cancel := contextWithTimeout(timeout)
		defer cancel()
		name, err := names.Claim(ctx, gw, current, candidate)
		return claimMsg{gen: gen, name: name, err: err}
	}
}

func (m *Model) handleClaim(msg claimMsg) tea.Cmd {
	if msg.gen != m.ctrl.Generation() {
		return nil
	}
	m.nameBusy = false
	fromResults := m.screen == screenResults
	if msg.err != nil {
		var verr *names.ValidationError
		if errors.As(msg.err, &verr) {
			m.nameErr = verr.Message
			if fromResults {
				m.results.status = resultPrompt
			}
			return nil
		}
		m.logger.Warn("name check failed", "error", msg.err)
		if fromResults {
			m.results.status = resultError
			m.results.err = msg.err.Error()
			return nil
		}
		m.nameErr = msg.err.Error()
		return nil
	}
	m.setName(msg.name)
	m.nameInput.Blur()
	if fromResults {
		return m.runSubmission()
	}
	m.screen = screenLobby
	return nil
}

func (m *Model) setName(name string) {
	m.name = name
	if m.names == nil {
		return
	}
	if err := m.names.Set(name); err != nil {
		m.logger.Error("failed to save name", "error", err)
	}
}

func (m *Model) viewName() string {
	lines := []string{titleStyle.Render("Display name"), "", m.nameInput.View()}
	switch {
	case m.nameBusy:
		lines = append(lines, "", pendingStyle.Render("Checking username..."))
	case m.nameErr != "":
		lines = append(lines, "", incorrectStyle.Render(m.nameErr))
	}
	lines = append(lines, "", footerStyle.Render("enter save · esc cancel"))
	return strings.Join(lines, "\n")
}
