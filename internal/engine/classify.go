package engine

// Mark is the display classification of a character.
type Mark int

// Character marks.
const (
	Untyped Mark = iota
	Correct
	Incorrect
	Extra
	Missed
)

// CharMark pairs a rune with its classification. Expected runes are shown for
// Correct, Incorrect, Untyped and Missed; Extra shows the typed rune.
type CharMark struct {
	Rune rune
	Mark Mark
}

// Classify marks each character of a word against what was typed. For the
// current word untyped expected runes are Untyped; for committed words they
// are Missed.
func Classify(expected, typed string, committed bool) []CharMark {
	exp := []rune(expected)
	got := []rune(typed)
	n := max(len(exp), len(got))
	out := make([]CharMark, 0, n)
	for i := 0; i < n; i++ {
		switch {
		case i < len(exp) && i < len(got):
			mark := Incorrect
			if got[i] == exp[i] {
				mark = Correct
			}
			out = append(out, CharMark{Rune: exp[i], Mark: mark})
		case i < len(exp):
			mark := Untyped
			if committed {
				mark = Missed
			}
			out = append(out, CharMark{Rune: exp[i], Mark: mark})
		default:
			out = append(out, CharMark{Rune: got[i], Mark: Extra})
		}
	}
	return out
}
