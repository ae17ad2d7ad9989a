// Package generator builds word queues for typing sessions.
package generator

import (
	"math/rand"
	"time"
)

// QueueLength is the default number of words in a session queue. It exceeds
// every offered words option and what a time session can plausibly consume.
const QueueLength = 200

// Generator produces shuffled word queues.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a deterministic Generator.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Generate returns count words drawn from master. Each pass over master is a
// uniform shuffle without replacement; passes repeat when master is shorter
// than count. master is not modified.
func (g *Generator) Generate(master []string, count int) []string {
	if len(master) == 0 || count <= 0 {
		return nil
	}
	result := make([]string, 0, count)
	pass := make([]string, len(master))
	for len(result) < count {
		copy(pass, master)
		g.rnd.Shuffle(len(pass), func(i, j int) {
			pass[i], pass[j] = pass[j], pass[i]
		})
		need := count - len(result)
		if need > len(pass) {
			need = len(pass)
		}
		result = append(result, pass[:need]...)
	}
	return result
}
