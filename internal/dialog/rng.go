package dialog

import (
	"math/rand"
	"sync"
	"time"
)

// RandomSource is the single randomness dependency of the engine: template
// selection, tie-breaking among equally suitable vehicles and upsell
// injection all flow through it. Tests inject a seeded or stubbed source to
// make those choices deterministic.
type RandomSource interface {
	Intn(n int) int
	Float64() float64
}

// lockedRand makes a rand.Rand safe for concurrent sessions.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func newLockedRand() *lockedRand {
	return &lockedRand{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

// pick returns a random element. Empty input returns the zero string.
func pick(rng RandomSource, items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[rng.Intn(len(items))]
}

// sample returns up to n distinct elements in random order without mutating
// the input.
func sample(rng RandomSource, items []string, n int) []string {
	if n > len(items) {
		n = len(items)
	}
	if n <= 0 {
		return nil
	}
	shuffled := append([]string(nil), items...)
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(shuffled)-i)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled[:n]
}
