// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/pinkytype/internal/leaderboard"
	"github.com/verte-zerg/pinkytype/internal/logging"
	"github.com/verte-zerg/pinkytype/internal/model"
	"github.com/verte-zerg/pinkytype/internal/names"
	"github.com/verte-zerg/pinkytype/internal/session"
	statsPkg "github.com/verte-zerg/pinkytype/internal/stats"
)

// Durations of scoped visual effects.
const (
	FlashDuration     = 150 * time.Millisecond
	CelebrateDuration = 2 * time.Second
	defaultTimeout    = 5 * time.Second
)

// History persists finished sessions.
type History interface {
	InsertSession(ctx context.Context, rec model.SessionRecord) (int64, error)
	ListSessions(ctx context.Context, category string, last int) ([]model.SessionRecord, error)
}

// NameStore holds the display name between runs.
type NameStore interface {
	Get() (string, bool, error)
	Set(name string) error
}

// Options wires the model to its collaborators. History and Names may be nil.
type Options struct {
	Config  model.GameConfig
	Words   []string
	Gateway leaderboard.Gateway
	History History
	Names   NameStore
	Logger  *slog.Logger
	Clock   func() time.Time
	Timeout time.Duration
}

type screen int

const (
	screenLobby screen = iota
	screenPlaying
	screenResults
	screenLeaderboard
	screenName
)

type tickMsg struct{ gen int }

type flashDoneMsg struct{ gen, seq int }

type celebrateDoneMsg struct{ gen, seq int }

type submitMsg struct {
	gen int
	res leaderboard.Result
	err error
}

type claimMsg struct {
	gen  int
	name string
	err  error
}

type scoresMsg struct {
	category string
	entries  []model.LeaderboardEntry
	err      error
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	gw      leaderboard.Gateway
	history History
	names   NameStore
	logger  *slog.Logger
	timeout time.Duration

	ctrl   *session.Controller
	events []session.Event
	cfg    model.GameConfig
	name   string

	screen screen
	width  int
	height int

	flashing     bool
	flashSeq     int
	celebrate    int
	celebrateSeq int

	results   resultsState
	board     boardState
	nameInput textinput.Model
	nameErr   string
	nameBusy  bool

	lastWPM float64
	lastAcc float64
	hasLast bool

	allWPM       float64
	allAcc       float64
	allCorrect   int
	allIncorrect int
	allDuration  int64
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	extraStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#A8071A"))
	missedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Faint(true)
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = pendingStyle.Underline(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	selectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Underline(true)
	goodStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	warnStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAAD14"))
)

// NewModel constructs a typing TUI model.
func NewModel(opts Options) *Model {
	m := &Model{
		gw:      opts.Gateway,
		history: opts.History,
		names:   opts.Names,
		logger:  opts.Logger,
		timeout: opts.Timeout,
		cfg:     opts.Config.Normalized(),
	}
	if m.gw == nil {
		m.gw = leaderboard.Offline{}
	}
	if m.logger == nil {
		m.logger = logging.Discard()
	}
	if m.timeout <= 0 {
		m.timeout = defaultTimeout
	}

	sessOpts := []session.Option{session.OnEvent(func(ev session.Event) {
		m.events = append(m.events, ev)
	})}
	if opts.Clock != nil {
		sessOpts = append(sessOpts, session.WithClock(opts.Clock))
	}
	m.ctrl = session.New(m.cfg, opts.Words, sessOpts...)

	m.nameInput = textinput.New()
	m.nameInput.Placeholder = "Enter your name..."
	m.nameInput.CharLimit = names.MaxLength
	m.nameInput.Width = names.MaxLength + 1

	m.loadName()
	m.loadFooterStats()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.ctrl.Stop()
			return m, tea.Quit
		}
		switch m.screen {
		case screenPlaying:
			return m, m.updatePlaying(msg)
		case screenResults:
			return m, m.updateResults(msg)
		case screenLeaderboard:
			return m, m.updateLeaderboard(msg)
		case screenName:
			return m, m.updateName(msg)
		default:
			return m, m.updateLobby(msg)
		}
	case tickMsg:
		if msg.gen != m.ctrl.Generation() || !m.ctrl.Active() {
			return m, nil
		}
		active := m.ctrl.Tick()
		cmds := m.drainEvents()
		if active {
			cmds = append(cmds, m.tickCmd())
		}
		return m, tea.Batch(cmds...)
	case flashDoneMsg:
		if msg.gen == m.ctrl.Generation() && msg.seq == m.flashSeq {
			m.flashing = false
		}
		return m, nil
	case celebrateDoneMsg:
		if msg.gen == m.ctrl.Generation() && msg.seq == m.celebrateSeq {
			m.celebrate = 0
		}
		return m, nil
	case submitMsg:
		return m, m.handleSubmit(msg)
	case claimMsg:
		return m, m.handleClaim(msg)
	case scoresMsg:
		m.handleScores(msg)
		return m, nil
	default:
		if m.screen == screenName || (m.screen == screenResults && m.results.status == resultPrompt) {
			var cmd tea.Cmd
			m.nameInput, cmd = m.nameInput.Update(msg)
			return m, cmd
		}
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch m.screen {
	case screenPlaying:
		content = m.viewPlaying()
	case screenResults:
		content = m.viewResults()
	case screenLeaderboard:
		content = m.viewLeaderboard()
	case screenName:
		content = m.viewName()
	default:
		content = m.viewLobby()
	}
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		if footer == "" {
			return content
		}
		return content + "\n\n" + footer
	}
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) startSession() tea.Cmd {
	m.ctrl.Restart(m.cfg)
	m.events = nil
	m.flashing = false
	m.celebrate = 0
	m.results = resultsState{}
	m.screen = screenPlaying
	return m.tickCmd()
}

func (m *Model) tickCmd() tea.Cmd {
	gen := m.ctrl.Generation()
	return tea.Tick(session.TickInterval, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// drainEvents turns controller events into state changes and commands.
func (m *Model) drainEvents() []tea.Cmd {
	events := m.events
	m.events = nil
	var cmds []tea.Cmd
	for _, ev := range events {
		gen := m.ctrl.Generation()
		switch ev.Kind {
		case session.EventOverflow:
			m.flashSeq++
			m.flashing = true
			seq := m.flashSeq
			cmds = append(cmds, tea.Tick(FlashDuration, func(time.Time) tea.Msg {
				return flashDoneMsg{gen: gen, seq: seq}
			}))
		case session.EventCelebrate:
			m.celebrateSeq++
			m.celebrate = ev.Streak
			seq := m.celebrateSeq
			cmds = append(cmds, tea.Tick(CelebrateDuration, func(time.Time) tea.Msg {
				return celebrateDoneMsg{gen: gen, seq: seq}
			}))
		case session.EventFinished:
			cmds = append(cmds, m.finishSession(ev.Stats))
		}
	}
	return cmds
}

func (m *Model) finishSession(final model.SessionStats) tea.Cmd {
	m.flashing = false
	m.celebrate = 0
	m.flashSeq++
	m.celebrateSeq++
	m.recordSession(final)
	m.screen = screenResults
	return m.beginSubmission(final)
}

func (m *Model) recordSession(final model.SessionStats) {
	startedAt := m.ctrl.StartedAt()
	elapsed := time.Duration(final.TimeElapsed * float64(time.Second))
	rec := model.SessionRecord{
		StartedAt:  startedAt,
		EndedAt:    startedAt.Add(elapsed),
		Category:   m.ctrl.Config().CategoryKey(),
		Correct:    final.Chars.Correct,
		Incorrect:  final.Chars.Incorrect,
		DurationMs: elapsed.Milliseconds(),
		WPM:        final.WPM,
		Accuracy:   final.Accuracy,
	}
	if m.history != nil {
		ctx, cancel := contextWithTimeout(m.timeout)
		defer cancel()
		if _, err := m.history.InsertSession(ctx, rec); err != nil {
			m.logger.Error("failed to save session", "error", err)
		}
	}
	m.lastWPM = final.WPM
	m.lastAcc = final.Accuracy
	m.hasLast = true
	m.allCorrect += rec.Correct
	m.allIncorrect += rec.Incorrect
	m.allDuration += rec.DurationMs
	m.recomputeAllTime()
	m.logger.Info("session finished", "category", rec.Category, "wpm", final.WPM, "accuracy", final.Accuracy)
}

func (m *Model) loadName() {
	if m.names == nil {
		return
	}
	name, ok, err := m.names.Get()
	if err != nil {
		m.logger.Error("failed to load name", "error", err)
		return
	}
	if ok {
		m.name = name
	}
}

func (m *Model) loadFooterStats() {
	if m.history == nil {
		return
	}
	ctx, cancel := contextWithTimeout(m.timeout)
	defer cancel()
	sessions, err := m.history.ListSessions(ctx, "", 0)
	if err != nil {
		m.logger.Error("failed to load session stats", "error", err)
		return
	}
	if len(sessions) == 0 {
		return
	}
	last := sessions[len(sessions)-1]
	m.lastWPM = last.WPM
	m.lastAcc = last.Accuracy
	m.hasLast = true

	for _, s := range sessions {
		m.allCorrect += s.Correct
		m.allIncorrect += s.Incorrect
		m.allDuration += s.DurationMs
	}
	m.recomputeAllTime()
}

func (m *Model) recomputeAllTime() {
	m.allWPM = statsPkg.WPM(m.allCorrect, time.Duration(m.allDuration)*time.Millisecond)
	m.allAcc = statsPkg.Accuracy(m.allCorrect, m.allIncorrect)
}

func contextWithTimeout(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}
