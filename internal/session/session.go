// Package session orchestrates a typing session per game mode.
package session

import (
	"time"

	"github.com/verte-zerg/pinkytype/internal/engine"
	"github.com/verte-zerg/pinkytype/internal/generator"
	"github.com/verte-zerg/pinkytype/internal/model"
	"github.com/verte-zerg/pinkytype/internal/stats"
)

// TickInterval is the recommended sampling cadence while a session is active.
const TickInterval = 100 * time.Millisecond

// EventKind names a side effect raised by the controller.
type EventKind int

// Controller events.
const (
	EventKeystroke EventKind = iota
	EventOverflow
	EventCelebrate
	EventFinished
)

// Event is delivered to the OnEvent callback.
type Event struct {
	Kind   EventKind
	Streak int
	Stats  model.SessionStats
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithGenerator overrides the word generator.
func WithGenerator(gen *generator.Generator) Option {
	return func(c *Controller) {
		c.gen = gen
	}
}

// WithQueueLength overrides the number of words generated per session.
func WithQueueLength(n int) Option {
	return func(c *Controller) {
		c.queueLen = n
	}
}

// OnEvent registers a callback for side effects.
func OnEvent(fn func(Event)) Option {
	return func(c *Controller) {
		c.notify = fn
	}
}

// Controller owns the game config, the clock and the engine. Ticks and key
// presses must be delivered from a single goroutine.
type Controller struct {
	cfg      model.GameConfig
	words    []string
	gen      *generator.Generator
	queueLen int
	now      func() time.Time
	notify   func(Event)

	engine     *engine.Engine
	startedAt  time.Time
	elapsed    time.Duration
	liveWPM    float64
	final      model.SessionStats
	hasFinal   bool
	generation int
}

// New returns a controller for cfg drawing words from master.
func New(cfg model.GameConfig, master []string, opts ...Option) *Controller {
	c := &Controller{
		cfg:      cfg.Normalized(),
		words:    master,
		queueLen: generator.QueueLength,
		now:      time.Now,
		engine:   engine.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.gen == nil {
		c.gen = generator.New()
	}
	return c
}

// Start begins a fresh session, discarding any previous state.
func (c *Controller) Start() {
	c.generation++
	c.engine.Start(c.gen.Generate(c.words, c.queueLen))
	c.startedAt = c.now()
	c.elapsed = 0
	c.liveWPM = 0
	c.final = model.SessionStats{}
	c.hasFinal = false
}

// Restart switches to cfg and starts a new session.
func (c *Controller) Restart(cfg model.GameConfig) {
	c.cfg = cfg.Normalized()
	c.Start()
}

// Stop abandons the session. Pending timers tied to the current generation
// become stale.
func (c *Controller) Stop() {
	c.generation++
	c.engine.Reset()
	c.elapsed = 0
	c.liveWPM = 0
	c.final = model.SessionStats{}
	c.hasFinal = false
}

// Tick samples the clock, refreshes live WPM and ends expired time sessions.
// It reports whether the session is still active.
func (c *Controller) Tick() bool {
	if !c.Active() {
		return false
	}
	c.sample()
	if c.expired() {
		c.finish()
		return false
	}
	return true
}

// Press applies a key. The clock is sampled first so that a time session
// which has already expired ends before a late key is counted.
func (c *Controller) Press(k engine.Key) engine.Outcome {
	if !c.Active() {
		return engine.Outcome{}
	}
	c.sample()
	if c.expired() {
		c.finish()
		return engine.Outcome{}
	}

	out := c.engine.Press(k)
	switch {
	case out.Overflow:
		c.emit(Event{Kind: EventOverflow})
	case out.Accepted:
		c.emit(Event{Kind: EventKeystroke})
	}
	if out.Celebrate {
		c.emit(Event{Kind: EventCelebrate, Streak: out.Streak})
	}
	if out.Committed && c.cfg.Mode == model.ModeWords && c.engine.CurrentWordIndex() >= c.cfg.Value {
		c.finish()
	}
	return out
}

// End stops an active session manually. Calling it again returns the frozen
// stats unchanged.
func (c *Controller) End() model.SessionStats {
	if c.Active() {
		c.sample()
		c.finish()
	}
	return c.final
}

func (c *Controller) sample() {
	c.elapsed = c.now().Sub(c.startedAt)
	if c.elapsed < 0 {
		c.elapsed = 0
	}
	c.liveWPM = stats.LiveWPM(c.engine.Chars().Correct, c.elapsed)
}

func (c *Controller) expired() bool {
	return c.cfg.Mode == model.ModeTime && c.elapsed >= c.target()
}

func (c *Controller) target() time.Duration {
	return time.Duration(c.cfg.Value) * time.Second
}

func (c *Controller) finish() {
	if !c.engine.Finish() {
		return
	}
	elapsed := c.elapsed
	if c.cfg.Mode == model.ModeTime && elapsed > c.target() {
		elapsed = c.target()
	}
	c.final = stats.Final(c.engine.Chars(), elapsed)
	c.hasFinal = true
	c.emit(Event{Kind: EventFinished, Stats: c.final})
}

func (c *Controller) emit(ev Event) {
	if c.notify != nil {
		c.notify(ev)
	}
}

// Config returns the normalized game config.
func (c *Controller) Config() model.GameConfig {
	return c.cfg
}

// Engine exposes the typing engine for rendering.
func (c *Controller) Engine() *engine.Engine {
	return c.engine
}

// Active reports whether keys and ticks are being processed.
func (c *Controller) Active() bool {
	return c.engine.State() == engine.Active
}

// Finished reports whether final stats are available.
func (c *Controller) Finished() bool {
	return c.hasFinal
}

// Generation identifies the current session for scoped timers.
func (c *Controller) Generation() int {
	return c.generation
}

// Elapsed returns the last sampled elapsed time.
func (c *Controller) Elapsed() time.Duration {
	return c.elapsed
}

// Remaining returns the time-mode countdown, never negative. It is 0 for
// other modes.
func (c *Controller) Remaining() time.Duration {
	if c.cfg.Mode != model.ModeTime {
		return 0
	}
	return max(0, c.target()-c.elapsed)
}

// Progress returns committed words and the words-mode target.
func (c *Controller) Progress() (done, target int) {
	return c.engine.CurrentWordIndex(), c.cfg.Value
}

// LiveWPM returns the last sampled live WPM.
func (c *Controller) LiveWPM() float64 {
	return c.liveWPM
}

// Stats returns the final stats once the session has finished.
func (c *Controller) Stats() (model.SessionStats, bool) {
	return c.final, c.hasFinal
}

// StartedAt returns when the current session began.
func (c *Controller) StartedAt() time.Time {
	return c.startedAt
}
