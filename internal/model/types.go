// Package model defines shared data structures.
package model

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// GameMode selects how a session terminates.
type GameMode string

// Supported game modes.
const (
	ModeWords GameMode = "words"
	ModeTime  GameMode = "time"
	ModeZen   GameMode = "zen"
)

// Offered session lengths.
var (
	TimeOptions = []int{15, 30, 60, 120}
	WordOptions = []int{10, 25, 50, 100}
)

// Default values used when a mode is selected without an explicit value.
const (
	DefaultWords = 25
	DefaultTime  = 30
)

// ParseGameMode parses a mode name case-insensitively.
func ParseGameMode(s string) (GameMode, error) {
	switch GameMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeWords:
		return ModeWords, nil
	case ModeTime:
		return ModeTime, nil
	case ModeZen:
		return ModeZen, nil
	}
	return "", fmt.Errorf("unknown mode %q (available: words, time, zen)", s)
}

// Options returns the selectable values for the mode, nil for zen.
func (m GameMode) Options() []int {
	switch m {
	case ModeTime:
		return TimeOptions
	case ModeWords:
		return WordOptions
	default:
		return nil
	}
}

// DefaultValue returns the value preselected for the mode.
func (m GameMode) DefaultValue() int {
	switch m {
	case ModeTime:
		return DefaultTime
	case ModeWords:
		return DefaultWords
	default:
		return 0
	}
}

// GameConfig defines a session target. Value is seconds for time mode,
// a word count for words mode and ignored for zen.
type GameConfig struct {
	Mode  GameMode
	Value int
}

// Normalized returns the config with Value forced to 0 for zen.
func (c GameConfig) Normalized() GameConfig {
	if c.Mode == ModeZen {
		return GameConfig{Mode: ModeZen}
	}
	return c
}

// CategoryKey returns the leaderboard partition for the config.
func (c GameConfig) CategoryKey() string {
	if c.Mode == ModeZen {
		return string(ModeZen)
	}
	return fmt.Sprintf("%s-%d", c.Mode, c.Value)
}

// Validate checks the value against the offered options.
func (c GameConfig) Validate() error {
	switch c.Mode {
	case ModeZen:
		return nil
	case ModeWords, ModeTime:
		if !slices.Contains(c.Mode.Options(), c.Value) {
			return fmt.Errorf("invalid %s value %d (available: %s)", c.Mode, c.Value, joinInts(c.Mode.Options()))
		}
		return nil
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ", ")
}

// CharStats counts classified characters. Total is only filled in final stats.
type CharStats struct {
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
	Total     int `json:"total"`
}

// SessionStats captures the result of a typing session.
type SessionStats struct {
	WPM         float64   `json:"wpm"`
	Accuracy    float64   `json:"accuracy"`
	RawWPM      float64   `json:"rawWpm"`      // reserved, always 0
	Consistency float64   `json:"consistency"` // reserved, always 0
	Chars       CharStats `json:"charStats"`
	TimeElapsed float64   `json:"timeElapsed"` // seconds
}

// LeaderboardEntry is a stored score.
type LeaderboardEntry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	WPM       int       `json:"wpm"`
	Accuracy  float64   `json:"accuracy"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// ScoreSubmission is a score sent to a leaderboard.
type ScoreSubmission struct {
	Name     string  `json:"name" validate:"required,min=3,max=15"`
	WPM      int     `json:"wpm" validate:"gte=0"`
	Accuracy float64 `json:"accuracy" validate:"gte=0,lte=100"`
	Category string  `json:"category" validate:"required,max=32"`
}

// SessionRecord is a finished session kept in local history.
type SessionRecord struct {
	ID         int64
	StartedAt  time.Time
	EndedAt    time.Time
	Category   string
	Correct    int
	Incorrect  int
	DurationMs int64
	WPM        float64
	Accuracy   float64
}
