package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/pinkytype/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "pinkytype.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestListSessionsLast(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	var ids []int64
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		end := start.Add(30 * time.Second)
		id, err := st.InsertSession(ctx, model.SessionRecord{
			StartedAt:  start,
			EndedAt:    end,
			Category:   "time-30",
			Correct:    100,
			Incorrect:  4,
			DurationMs: end.Sub(start).Milliseconds(),
			WPM:        float64(40 + i),
			Accuracy:   96,
		})
		if err != nil {
			t.Fatalf("insert session: %v", err)
		}
		ids = append(ids, id)
	}
	if _, err := st.InsertSession(ctx, model.SessionRecord{
		StartedAt: time.Unix(0, 0), EndedAt: time.Unix(500, 0), Category: "zen",
	}); err != nil {
		t.Fatalf("insert zen session: %v", err)
	}

	records, err := st.ListSessions(ctx, "time-30", 2)
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(records))
	}
	if records[0].ID != ids[1] || records[1].ID != ids[2] {
		t.Fatalf("unexpected session order: %+v", records)
	}
	if records[1].WPM != 42 {
		t.Fatalf("expected wpm 42, got %f", records[1].WPM)
	}

	all, err := st.ListSessions(ctx, "", 0)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 sessions, got %d", len(all))
	}
}

func TestSaveKeepsOneRecordPerNameAndCategory(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.Save(ctx, model.ScoreSubmission{Name: "Pinky", WPM: 60, Accuracy: 95, Category: "words-25"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := st.Save(ctx, model.ScoreSubmission{Name: "pinky", WPM: 50, Accuracy: 99, Category: "words-25"}); err != nil {
		t.Fatalf("save lower: %v", err)
	}
	best, ok, err := st.PersonalBest(ctx, "PINKY", "words-25")
	if err != nil || !ok || best != 60 {
		t.Fatalf("expected best 60, got %d ok=%v err=%v", best, ok, err)
	}

	if err := st.Save(ctx, model.ScoreSubmission{Name: "pinky", WPM: 60, Accuracy: 99, Category: "words-25"}); err != nil {
		t.Fatalf("save equal: %v", err)
	}
	entries, err := st.Scores(ctx, "words-25")
	if err != nil {
		t.Fatalf("scores: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	if entries[0].Accuracy != 99 || entries[0].Name != "pinky" {
		t.Fatalf("expected equal wpm to refresh accuracy, got %+v", entries[0])
	}
	if entries[0].ID == "" {
		t.Fatalf("expected generated id")
	}

	if err := st.Save(ctx, model.ScoreSubmission{Name: "pinky", WPM: 70, Accuracy: 90, Category: "words-25"}); err != nil {
		t.Fatalf("save higher: %v", err)
	}
	best, _, _ = st.PersonalBest(ctx, "pinky", "words-25")
	if best != 70 {
		t.Fatalf("expected best 70, got %d", best)
	}
}

func TestScoresOrderAndLimit(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	for i := 0; i < 12; i++ {
		name := string(rune('a'+i)) + "name"
		if err := st.Save(ctx, model.ScoreSubmission{Name: name, WPM: 20 + i, Accuracy: 90, Category: "time-30"}); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	if err := st.Save(ctx, model.ScoreSubmission{Name: "other", WPM: 200, Accuracy: 90, Category: "time-60"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	entries, err := st.Scores(ctx, "time-30")
	if err != nil {
		t.Fatalf("scores: %v", err)
	}
	if len(entries) != MaxScoresPerCategory {
		t.Fatalf("expected %d entries, got %d", MaxScoresPerCategory, len(entries))
	}
	if entries[0].WPM != 31 || entries[9].WPM != 22 {
		t.Fatalf("unexpected order: first=%d last=%d", entries[0].WPM, entries[9].WPM)
	}
	for _, e := range entries {
		if e.Category != "time-30" {
			t.Fatalf("unexpected category %q", e.Category)
		}
	}
}

func TestPersonalBestMissing(t *testing.T) {
	st := openTestStore(t)
	_, ok, err := st.PersonalBest(context.Background(), "nobody", "zen")
	if err != nil || ok {
		t.Fatalf("expected no personal best, got ok=%v err=%v", ok, err)
	}
}

func TestIsNameTakenCaseInsensitive(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if err := st.Save(ctx, model.ScoreSubmission{Name: "brain", WPM: 40, Accuracy: 90, Category: "time-15"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	taken, err := st.IsNameTaken(ctx, " BRAIN ")
	if err != nil || !taken {
		t.Fatalf("expected brain to be taken, got %v (%v)", taken, err)
	}
	taken, err = st.IsNameTaken(ctx, "pinky")
	if err != nil || taken {
		t.Fatalf("expected pinky to be free, got %v (%v)", taken, err)
	}
}

func TestConcurrentSaves(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	playerNames := []string{"anna", "bert", "cara", "dave"}

	var g errgroup.Group
	for i := 0; i < 32; i++ {
		sub := model.ScoreSubmission{
			Name:     playerNames[i%len(playerNames)],
			WPM:      40 + i,
			Accuracy: 95,
			Category: "words-25",
		}
		g.Go(func() error {
			return st.Save(ctx, sub)
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent save: %v", err)
	}

	entries, err := st.Scores(ctx, "words-25")
	if err != nil {
		t.Fatalf("scores: %v", err)
	}
	if len(entries) != len(playerNames) {
		t.Fatalf("expected %d entries, got %d", len(playerNames), len(entries))
	}
	for i, name := range playerNames {
		best, ok, err := st.PersonalBest(ctx, name, "words-25")
		if err != nil || !ok {
			t.Fatalf("personal best %s: ok=%v err=%v", name, ok, err)
		}
		if want := 40 + 28 + i; best != want {
			t.Fatalf("expected best %d for %s, got %d", want, name, best)
		}
	}
}
