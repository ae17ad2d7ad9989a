package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/pinkytype/internal/model"
)

const sparkChars = " .:-=+*#%@"

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 || len(values) == 0 {
		copy(out, values)
		return out
	}
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(min(i+1, window))
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.Abs(hi-lo) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		idx := int(math.Round((v - lo) / (hi - lo) * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// Summary aggregates local session history.
type Summary struct {
	Sessions    int
	AvgWPM      float64
	BestWPM     float64
	AvgAccuracy float64
	Trend       []float64
}

// Summarize computes averages and a smoothed WPM trend.
func Summarize(records []model.SessionRecord, window int) Summary {
	if len(records) == 0 {
		return Summary{}
	}
	wpms := make([]float64, len(records))
	var total, acc float64
	s := Summary{Sessions: len(records)}
	for i, r := range records {
		wpms[i] = r.WPM
		total += r.WPM
		acc += r.Accuracy
		s.BestWPM = math.Max(s.BestWPM, r.WPM)
	}
	count := float64(len(records))
	s.AvgWPM = total / count
	s.AvgAccuracy = acc / count
	s.Trend = MovingAverage(wpms, window)
	return s
}

// RenderSummary prints a history summary table.
func RenderSummary(w io.Writer, records []model.SessionRecord, window int) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	s := Summarize(records, window)
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", s.Sessions),
		fmt.Sprintf("Avg WPM: %.2f", s.AvgWPM),
		fmt.Sprintf("Best WPM: %.2f", s.BestWPM),
		fmt.Sprintf("Avg Accuracy: %.2f%%", s.AvgAccuracy),
		fmt.Sprintf("Trend: %s", Sparkline(s.Trend)),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderLeaderboard prints ranked entries for a category.
func RenderLeaderboard(w io.Writer, category string, entries []model.LeaderboardEntry) error {
	if _, err := fmt.Fprintf(w, "Leaderboard %s\n", category); err != nil {
		return err
	}
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No scores yet for this category.")
		return err
	}
	headers := []string{"#", "Name", "WPM", "Accuracy", "Date"}
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			e.Name,
			fmt.Sprintf("%d", e.WPM),
			fmt.Sprintf("%.1f%%", e.Accuracy),
			e.CreatedAt.Local().Format("2006-01-02"),
		})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{0: true, 2: true, 3: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
