// Package names validates and stores the player's display name.
package names

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// Length bounds for a display name, inclusive.
const (
	MinLength = 3
	MaxLength = 15
)

var denylist = []string{"admin", "anon", "user", "test", "player", "aaa", "bbb", "ccc", "123"}

// ValidationError is a user-facing rejection of a display name.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// TakenChecker reports whether a name is already in use.
type TakenChecker interface {
	IsNameTaken(ctx context.Context, name string) (bool, error)
}

// Normalize trims and lower-cases a name. It is the only normalization point
// used before storage and comparison.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Validate checks length and the denylist and returns the normalized name.
func Validate(name string) (string, error) {
	normalized := Normalize(name)
	n := utf8.RuneCountInString(normalized)
	if n < MinLength {
		return "", &ValidationError{Message: fmt.Sprintf("Name must be at least %d characters.", MinLength)}
	}
	if n > MaxLength {
		return "", &ValidationError{Message: fmt.Sprintf("Name must be %d characters or less.", MaxLength)}
	}
	if slices.Contains(denylist, normalized) {
		return "", &ValidationError{Message: "Please choose a more original name."}
	}
	return normalized, nil
}

// Claim validates candidate and checks that nobody else uses it. Re-claiming
// the current name skips the availability check.
func Claim(ctx context.Context, checker TakenChecker, current, candidate string) (string, error) {
	normalized, err := Validate(candidate)
	if err != nil {
		return "", err
	}
	if normalized == Normalize(current) {
		return normalized, nil
	}
	taken, err := checker.IsNameTaken(ctx, normalized)
	if err != nil {
		return "", fmt.Errorf("could not verify name: %w", err)
	}
	if taken {
		return "", &ValidationError{Message: "This name is already taken."}
	}
	return normalized, nil
}
