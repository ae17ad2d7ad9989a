// Package leaderboard defines score storage gateways and the submission flow.
package leaderboard

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/verte-zerg/pinkytype/internal/model"
)

// Gateway is category-scoped score storage.
type Gateway interface {
	Scores(ctx context.Context, category string) ([]model.LeaderboardEntry, error)
	PersonalBest(ctx context.Context, name, category string) (int, bool, error)
	Save(ctx context.Context, sub model.ScoreSubmission) error
	IsNameTaken(ctx context.Context, name string) (bool, error)
}

// Backend selects a Gateway implementation.
type Backend string

// Supported backends.
const (
	BackendLocal  Backend = "local"
	BackendRemote Backend = "remote"
	BackendOff    Backend = "off"
)

// ParseBackend parses a backend name case-insensitively.
func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case BackendLocal, "":
		return BackendLocal, nil
	case BackendRemote:
		return BackendRemote, nil
	case BackendOff:
		return BackendOff, nil
	}
	return "", fmt.Errorf("unknown leaderboard backend %q (available: local, remote, off)", s)
}

// Options selects and configures a gateway.
type Options struct {
	Backend Backend
	URL     string
	Timeout time.Duration
}

// Open returns the gateway for opts. local is used for the local backend and
// may be nil, in which case the offline gateway is returned. A remote backend
// without URL also degrades to offline.
func Open(opts Options, local Gateway) Gateway {
	switch opts.Backend {
	case BackendRemote:
		if strings.TrimSpace(opts.URL) == "" {
			return Offline{}
		}
		return NewClient(opts.URL, &http.Client{Timeout: opts.Timeout})
	case BackendOff:
		return Offline{}
	default:
		if local == nil {
			return Offline{}
		}
		return local
	}
}

// Offline is the degraded gateway used when no backend is available. Reads
// return nothing and writes are skipped.
type Offline struct{}

// Scores implements Gateway.
func (Offline) Scores(context.Context, string) ([]model.LeaderboardEntry, error) {
	return []model.LeaderboardEntry{}, nil
}

// PersonalBest implements Gateway.
func (Offline) PersonalBest(context.Context, string, string) (int, bool, error) {
	return 0, false, nil
}

// Save implements Gateway.
func (Offline) Save(context.Context, model.ScoreSubmission) error {
	return nil
}

// IsNameTaken implements Gateway.
func (Offline) IsNameTaken(context.Context, string) (bool, error) {
	return false, nil
}
