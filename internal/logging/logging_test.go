package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesPlainText(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo)
	logger.Debug("hidden")
	logger.Info("score saved", "wpm", 72)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug record should be filtered: %q", out)
	}
	if !strings.Contains(out, "score saved") || !strings.Contains(out, "wpm=72") {
		t.Fatalf("unexpected output: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("non-terminal output should not be coloured: %q", out)
	}
}

func TestOpenFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pinkytype.log")
	for i := 0; i < 2; i++ {
		logger, closeFn, err := OpenFile(path, slog.LevelDebug)
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		logger.Info("session finished")
		closeFn()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := strings.Count(string(data), "session finished"); got != 2 {
		t.Fatalf("records = %d, want 2", got)
	}
}
