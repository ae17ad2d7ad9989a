package engine

import (
	"math/rand"
	"testing"
)

func typeString(e *Engine, s string) []Outcome {
	outcomes := make([]Outcome, 0, len(s))
	for _, r := range s {
		outcomes = append(outcomes, e.Press(Char(r)))
	}
	return outcomes
}

func TestStartResetsState(t *testing.T) {
	e := New()
	e.Start([]string{"cat", "dog"})
	typeString(e, "cax ")
	e.Start([]string{"owl"})
	if e.CurrentWordIndex() != 0 || e.Input() != "" || e.Streak() != 0 {
		t.Fatalf("expected reset state, got index=%d input=%q streak=%d", e.CurrentWordIndex(), e.Input(), e.Streak())
	}
	if chars := e.Chars(); chars.Correct != 0 || chars.Incorrect != 0 {
		t.Fatalf("expected zero chars, got %+v", chars)
	}
	if _, ok := e.History(0); ok {
		t.Fatalf("expected empty history after restart")
	}
}

func TestPerfectWords(t *testing.T) {
	e := New()
	e.Start([]string{"cat", "dog", "owl"})
	typeString(e, "cat dog ")
	if e.CurrentWordIndex() != 2 {
		t.Fatalf("expected index 2, got %d", e.CurrentWordIndex())
	}
	chars := e.Chars()
	if chars.Correct != 6 || chars.Incorrect != 0 {
		t.Fatalf("expected 6 correct, got %+v", chars)
	}
	if e.Streak() != 2 {
		t.Fatalf("expected streak 2, got %d", e.Streak())
	}
}

func TestMistypedWord(t *testing.T) {
	e := New()
	e.Start([]string{"cat", "dog"})
	typeString(e, "cax")
	out := e.Press(Char(' '))
	if !out.Committed || out.Perfect {
		t.Fatalf("expected imperfect commit, got %+v", out)
	}
	chars := e.Chars()
	if chars.Correct != 2 || chars.Incorrect != 1 {
		t.Fatalf("expected 2 correct 1 incorrect, got %+v", chars)
	}
	if e.Streak() != 0 {
		t.Fatalf("expected streak 0, got %d", e.Streak())
	}
	if typed, _ := e.History(0); typed != "cax" {
		t.Fatalf("expected history cax, got %q", typed)
	}
}

func TestExtraCharacter(t *testing.T) {
	e := New()
	e.Start([]string{"cat", "dog"})
	typeString(e, "cat ")
	typeString(e, "dogg ")
	chars := e.Chars()
	if chars.Correct != 6 || chars.Incorrect != 1 {
		t.Fatalf("expected 6 correct 1 incorrect, got %+v", chars)
	}
	if e.Streak() != 0 {
		t.Fatalf("expected streak reset, got %d", e.Streak())
	}
}

func TestCattAgainstCat(t *testing.T) {
	e := New()
	e.Start([]string{"cat"})
	outs := typeString(e, "catt ")
	last := outs[len(outs)-1]
	if last.Perfect {
		t.Fatalf("expected extra char to break perfection")
	}
	chars := e.Chars()
	if chars.Correct != 3 || chars.Incorrect != 1 {
		t.Fatalf("expected 3 correct 1 incorrect, got %+v", chars)
	}
}

func TestMissedCharacters(t *testing.T) {
	e := New()
	e.Start([]string{"house"})
	typeString(e, "ho ")
	chars := e.Chars()
	if chars.Correct != 2 || chars.Incorrect != 3 {
		t.Fatalf("expected 2 correct 3 incorrect, got %+v", chars)
	}
}

func TestSpaceWithEmptyInputIgnored(t *testing.T) {
	e := New()
	e.Start([]string{"cat"})
	out := e.Press(Key{Kind: KeySpace})
	if out.Accepted || e.CurrentWordIndex() != 0 {
		t.Fatalf("expected empty space to be ignored")
	}
}

func TestBackspace(t *testing.T) {
	e := New()
	e.Start([]string{"cat", "dog"})
	if out := e.Press(Key{Kind: KeyBackspace}); out.Accepted {
		t.Fatalf("expected backspace on empty input to be a no-op")
	}
	typeString(e, "cx")
	e.Press(Key{Kind: KeyBackspace})
	if e.Input() != "c" {
		t.Fatalf("expected input c, got %q", e.Input())
	}
	typeString(e, "at ")
	e.Press(Key{Kind: KeyBackspace})
	if e.CurrentWordIndex() != 1 {
		t.Fatalf("backspace must not move to a committed word")
	}
	if typed, _ := e.History(0); typed != "cat" {
		t.Fatalf("history changed: %q", typed)
	}
}

func TestOverflowGuard(t *testing.T) {
	e := New()
	e.Start([]string{"cat"})
	outs := typeString(e, "catxxxxxyz")
	if e.Input() != "catxxxxx" {
		t.Fatalf("expected input capped at 8 runes, got %q", e.Input())
	}
	if !outs[8].Overflow || !outs[9].Overflow {
		t.Fatalf("expected overflow signal for dropped keys")
	}
	if outs[7].Overflow {
		t.Fatalf("did not expect overflow for the 8th rune")
	}
	if chars := e.Chars(); chars.Correct != 0 || chars.Incorrect != 0 {
		t.Fatalf("overflow must not affect score before commit, got %+v", chars)
	}
}

func TestOtherKeysIgnored(t *testing.T) {
	e := New()
	e.Start([]string{"cat"})
	if out := e.Press(Key{Kind: KeyOther}); out.Accepted {
		t.Fatalf("expected other key to be ignored")
	}
}

func TestCelebrateEveryTenth(t *testing.T) {
	words := make([]string, 25)
	for i := range words {
		words[i] = "go"
	}
	e := New()
	e.Start(words)
	celebrations := 0
	for i := 0; i < 20; i++ {
		outs := typeString(e, "go ")
		last := outs[len(outs)-1]
		if last.Celebrate {
			celebrations++
			if last.Streak%CelebrateEvery != 0 {
				t.Fatalf("celebrated at streak %d", last.Streak)
			}
		}
	}
	if celebrations != 2 {
		t.Fatalf("expected 2 celebrations, got %d", celebrations)
	}
}

func TestFinishedIgnoresInput(t *testing.T) {
	e := New()
	e.Start([]string{"cat"})
	if !e.Finish() {
		t.Fatalf("expected first finish to transition")
	}
	if e.Finish() {
		t.Fatalf("expected second finish to be a no-op")
	}
	if out := e.Press(Char('c')); out.Accepted {
		t.Fatalf("expected input to be ignored after finish")
	}
	if e.State() != Finished {
		t.Fatalf("expected finished state, got %s", e.State())
	}
}

func TestExhaustedQueueIgnoresInput(t *testing.T) {
	e := New()
	e.Start([]string{"a"})
	typeString(e, "a ")
	if out := e.Press(Char('b')); out.Accepted {
		t.Fatalf("expected input to be ignored once the queue is exhausted")
	}
}

func TestRandomSequencesKeepInvariants(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	words := []string{"alpha", "be", "cat", "delta", "echo", "fox"}
	queue := make([]string, 300)
	for i := range queue {
		queue[i] = words[rnd.Intn(len(words))]
	}
	alphabet := []rune("abcdefghlopxt")

	e := New()
	e.Start(queue)
	for step := 0; step < 5000; step++ {
		beforeIndex := e.CurrentWordIndex()
		before := e.Chars()
		inputLen := len([]rune(e.Input()))
		expected, ok := e.CurrentWord()
		if !ok {
			break
		}

		var key Key
		switch n := rnd.Intn(10); {
		case n < 6:
			key = Char(alphabet[rnd.Intn(len(alphabet))])
		case n < 8:
			key = Key{Kind: KeySpace}
		default:
			key = Key{Kind: KeyBackspace}
		}
		e.Press(key)

		after := e.Chars()
		if e.CurrentWordIndex() < beforeIndex {
			t.Fatalf("index decreased at step %d", step)
		}
		committed := key.Kind == KeySpace && inputLen > 0
		if committed {
			if e.CurrentWordIndex() != beforeIndex+1 {
				t.Fatalf("expected index to advance by one at step %d", step)
			}
			delta := (after.Correct + after.Incorrect) - (before.Correct + before.Incorrect)
			if delta != max(inputLen, len([]rune(expected))) {
				t.Fatalf("char count delta %d, expected %d", delta, max(inputLen, len([]rune(expected))))
			}
		} else if e.CurrentWordIndex() != beforeIndex {
			t.Fatalf("index changed without a commit at step %d", step)
		}
		if after.Correct < before.Correct || after.Incorrect < before.Incorrect {
			t.Fatalf("counters decreased at step %d", step)
		}
	}
}
