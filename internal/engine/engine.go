// Package engine implements the typing session state machine.
package engine

import "github.com/verte-zerg/pinkytype/internal/model"

// State is the lifecycle state of an Engine.
type State int

// Engine states.
const (
	Idle State = iota
	Active
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// OverflowLimit is how many runes may be typed past the expected word length.
const OverflowLimit = 5

// CelebrateEvery is the streak interval that raises Outcome.Celebrate.
const CelebrateEvery = 10

// KeyKind classifies an input event.
type KeyKind int

// Key kinds understood by the engine.
const (
	KeyOther KeyKind = iota
	KeyChar
	KeySpace
	KeyBackspace
)

// Key is a single input event. Rune is only meaningful for KeyChar.
type Key struct {
	Kind KeyKind
	Rune rune
}

// Char returns a printable key event. A space rune maps to KeySpace.
func Char(r rune) Key {
	if r == ' ' {
		return Key{Kind: KeySpace}
	}
	return Key{Kind: KeyChar, Rune: r}
}

// Outcome reports what a key did.
type Outcome struct {
	Accepted  bool // the key changed state
	Overflow  bool // a character was dropped by the overflow guard
	Committed bool // a word was committed
	Perfect   bool // the committed word had no errors
	Celebrate bool // the streak reached a multiple of CelebrateEvery
	Streak    int  // streak after a commit
}

// Engine tracks the current word, pending input, committed history and
// character statistics. It is not safe for concurrent use.
type Engine struct {
	state   State
	words   []string
	index   int
	input   []rune
	history map[int]string
	correct int
	wrong   int
	streak  int
}

// New returns an idle engine.
func New() *Engine {
	return &Engine{history: map[int]string{}}
}

// Start resets all session state and begins typing against queue.
func (e *Engine) Start(queue []string) {
	e.state = Active
	e.words = queue
	e.index = 0
	e.input = nil
	e.history = map[int]string{}
	e.correct = 0
	e.wrong = 0
	e.streak = 0
}

// Reset discards the session and returns to Idle.
func (e *Engine) Reset() {
	e.Start(nil)
	e.state = Idle
}

// Finish moves an active session to Finished. It reports whether the
// transition happened.
func (e *Engine) Finish() bool {
	if e.state != Active {
		return false
	}
	e.state = Finished
	return true
}

// Press applies a key. Keys are ignored unless the engine is Active and a
// current word exists.
func (e *Engine) Press(k Key) Outcome {
	if e.state != Active {
		return Outcome{}
	}
	expected, ok := e.CurrentWord()
	if !ok {
		return Outcome{}
	}
	switch k.Kind {
	case KeyBackspace:
		if len(e.input) == 0 {
			return Outcome{}
		}
		e.input = e.input[:len(e.input)-1]
		return Outcome{Accepted: true}
	case KeyChar:
		if k.Rune == ' ' {
			return e.commit(expected)
		}
		if len(e.input) >= len([]rune(expected))+OverflowLimit {
			return Outcome{Overflow: true}
		}
		e.input = append(e.input, k.Rune)
		return Outcome{Accepted: true}
	case KeySpace:
		return e.commit(expected)
	default:
		return Outcome{}
	}
}

func (e *Engine) commit(expected string) Outcome {
	if len(e.input) == 0 {
		return Outcome{}
	}
	typed := string(e.input)
	correct, incorrect := compareWord([]rune(typed), []rune(expected))
	e.correct += correct
	e.wrong += incorrect

	perfect := incorrect == 0 && len(e.input) == len([]rune(expected))
	if perfect {
		e.streak++
	} else {
		e.streak = 0
	}

	e.history[e.index] = typed
	e.index++
	e.input = nil

	return Outcome{
		Accepted:  true,
		Committed: true,
		Perfect:   perfect,
		Celebrate: e.streak > 0 && e.streak%CelebrateEvery == 0,
		Streak:    e.streak,
	}
}

// compareWord counts aligned matches. Extra and missed positions count as
// incorrect, so correct+incorrect == max(len(typed), len(expected)).
func compareWord(typed, expected []rune) (correct, incorrect int) {
	n := max(len(typed), len(expected))
	for i := 0; i < n; i++ {
		if i < len(typed) && i < len(expected) && typed[i] == expected[i] {
			correct++
			continue
		}
		incorrect++
	}
	return correct, incorrect
}

// State returns the lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// Words returns the session queue.
func (e *Engine) Words() []string {
	return e.words
}

// CurrentWordIndex returns the index of the word being typed.
func (e *Engine) CurrentWordIndex() int {
	return e.index
}

// CurrentWord returns the word being typed, false once the queue is exhausted.
func (e *Engine) CurrentWord() (string, bool) {
	if e.index < 0 || e.index >= len(e.words) {
		return "", false
	}
	return e.words[e.index], true
}

// Input returns the uncommitted input for the current word.
func (e *Engine) Input() string {
	return string(e.input)
}

// History returns what was typed for a committed word.
func (e *Engine) History(index int) (string, bool) {
	typed, ok := e.history[index]
	return typed, ok
}

// Chars returns cumulative counters. Total is left for finalization.
func (e *Engine) Chars() model.CharStats {
	return model.CharStats{Correct: e.correct, Incorrect: e.wrong}
}

// Streak returns the number of consecutive perfect commits.
func (e *Engine) Streak() int {
	return e.streak
}
