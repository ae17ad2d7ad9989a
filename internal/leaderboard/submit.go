package leaderboard

import (
	"context"
	"math"

	"github.com/verte-zerg/pinkytype/internal/model"
	"github.com/verte-zerg/pinkytype/internal/names"
)

// MinSubmitWPM is the lowest WPM that is offered to the leaderboard.
const MinSubmitWPM = 10

// Status is the outcome of a submission attempt.
type Status int

// Submission outcomes.
const (
	StatusSkipped Status = iota
	StatusNeedName
	StatusNewRecord
	StatusNoRecord
)

func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusNeedName:
		return "need-name"
	case StatusNewRecord:
		return "new-record"
	case StatusNoRecord:
		return "no-record"
	default:
		return "unknown"
	}
}

// Result describes a submission.
type Result struct {
	Status       Status
	Category     string
	WPM          int
	PersonalBest int
	HadBest      bool
}

// Eligible reports whether stats for cfg should be offered to a leaderboard.
func Eligible(cfg model.GameConfig, s model.SessionStats) bool {
	return cfg.Mode != model.ModeZen && s.WPM >= MinSubmitWPM
}

// Submit saves the session when it matches or beats the player's personal
// best. Gateway errors are returned and leave the stats untouched.
func Submit(ctx context.Context, gw Gateway, name string, cfg model.GameConfig, s model.SessionStats) (Result, error) {
	res := Result{
		Category: cfg.CategoryKey(),
		WPM:      int(math.Round(s.WPM)),
	}
	if !Eligible(cfg, s) {
		res.Status = StatusSkipped
		return res, nil
	}
	name = names.Normalize(name)
	if name == "" {
		res.Status = StatusNeedName
		return res, nil
	}

	best, ok, err := gw.PersonalBest(ctx, name, res.Category)
	if err != nil {
		return res, err
	}
	res.PersonalBest, res.HadBest = best, ok
	if ok && res.WPM < best {
		res.Status = StatusNoRecord
		return res, nil
	}

	err = gw.Save(ctx, model.ScoreSubmission{
		Name:     name,
		WPM:      res.WPM,
		Accuracy: s.Accuracy,
		Category: res.Category,
	})
	if err != nil {
		return res, err
	}
	res.Status = StatusNewRecord
	return res, nil
}
