package midi

import (
	"math/rand"
	"time"

	"github.com/jsphweid/tunesheet/model"
)

// Resolver decides how many times a sequence is played.
type Resolver struct {
	rnd *rand.Rand
}

// NewResolver seeds the random source with seed, or with the clock if seed is 0.
func NewResolver(seed int64) *Resolver {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Resolver{rnd: rand.New(rand.NewSource(seed))}
}

// Count resolves m: a fixed count as is, a random range as base*k with k
// drawn uniformly from [min, max], and no mode as a single play.
func (r *Resolver) Count(m model.RepeatMode) int {
	switch m.Kind() {
	case model.RepeatFixed:
		return m.Count
	case model.RepeatRandom:
		if m.Max < m.Min {
			return 0
		}
		return m.Base * (m.Min + r.rnd.Intn(m.Max-m.Min+1))
	}
	return 1
}
