// Package mathutil provides small numeric helpers used by presentation code:
// interpolation, clamping, easing curves and ranged random values.
package mathutil

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// Lerp interpolates between a and b. t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp limits v to [lo, hi]. When lo > hi the result is lo.
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// EaseOutQuad decelerates towards t = 1.
func EaseOutQuad(t float64) float64 {
	return t * (2 - t)
}

// EaseInOutCubic accelerates until t = 0.5, then decelerates.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// DegToRad converts degrees to radians.
func DegToRad(d float64) float64 {
	return d * math.Pi / 180
}

// Source is a uniform [0,1) generator safe for concurrent use.
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSource returns a Source seeded with seed. The same seed yields the same sequence.
func NewSource(seed int64) *Source {
	return &Source{rng: rand.New(rand.NewSource(seed))} //nolint:gosec // display jitter, not security
}

// Float64 returns the next value in [0,1).
func (s *Source) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// Range returns a value in [lo, hi) drawn from s.
func (s *Source) Range(lo, hi float64) float64 {
	return s.Float64()*(hi-lo) + lo
}

var global = NewSource(time.Now().UnixNano()) //nolint:gochecknoglobals // process-wide random source

// RandomRange returns a value in [lo, hi) from the process-wide source.
// If lo > hi the result lies in (hi, lo].
func RandomRange(lo, hi float64) float64 {
	return global.Range(lo, hi)
}
