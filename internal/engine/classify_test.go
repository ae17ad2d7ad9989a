package engine

import "testing"

func marksOf(cm []CharMark) []Mark {
	out := make([]Mark, len(cm))
	for i, c := range cm {
		out[i] = c.Mark
	}
	return out
}

func equalMarks(a, b []Mark) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestClassifyCurrentWord(t *testing.T) {
	got := marksOf(Classify("cat", "cx", false))
	want := []Mark{Correct, Incorrect, Untyped}
	if !equalMarks(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestClassifyCommittedWordMissed(t *testing.T) {
	got := marksOf(Classify("house", "ho", true))
	want := []Mark{Correct, Correct, Missed, Missed, Missed}
	if !equalMarks(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestClassifyExtraShowsTypedRune(t *testing.T) {
	cm := Classify("cat", "catqz", true)
	if len(cm) != 5 {
		t.Fatalf("expected 5 marks, got %d", len(cm))
	}
	if cm[3].Mark != Extra || cm[3].Rune != 'q' || cm[4].Rune != 'z' {
		t.Fatalf("expected extra typed runes, got %+v", cm[3:])
	}
}

func TestClassifyIncorrectShowsExpectedRune(t *testing.T) {
	cm := Classify("cat", "cot", true)
	if cm[1].Rune != 'a' || cm[1].Mark != Incorrect {
		t.Fatalf("expected expected rune with incorrect mark, got %+v", cm[1])
	}
}
