package deck

import (
	"fmt"
	"math/rand/v2"
)

// RandomSource picks an integer in [lower, upper], both inclusive.
type RandomSource interface {
	NextInt(lower, upper int) int
}

type mathRandom struct {
	r *rand.Rand
}

// NewRandomSource returns a source backed by math/rand/v2. A nil rng uses
// the global generator.
func NewRandomSource(rng *rand.Rand) RandomSource {
	return &mathRandom{r: rng}
}

// NewSeededRandomSource returns a reproducible source.
func NewSeededRandomSource(seed uint64) RandomSource {
	return &mathRandom{r: rand.New(rand.NewPCG(seed, seed))}
}

func (m *mathRandom) NextInt(lower, upper int) int {
	if upper <= lower {
		return lower
	}
	if m.r == nil {
		return lower + rand.IntN(upper-lower+1)
	}
	return lower + m.r.IntN(upper-lower+1)
}

// StaticRandom replays a fixed script of values, for tests that need exact
// draws. Running past the end of the script or returning a value outside the
// requested range is a bug in the test and panics.
type StaticRandom struct {
	values []int
	next   int
}

// NewStaticRandom creates a source that returns values in order.
func NewStaticRandom(values ...int) *StaticRandom {
	return &StaticRandom{values: values}
}

// NextInt returns the next scripted value.
func (s *StaticRandom) NextInt(lower, upper int) int {
	if s.next >= len(s.values) {
		// ALLOW-PANIC: script exhausted
		panic(fmt.Sprintf("static random: script of %d values exhausted", len(s.values)))
	}
	v := s.values[s.next]
	s.next++
	if v < lower || v > upper {
		// ALLOW-PANIC: scripted value out of range
		panic(fmt.Sprintf("static random: value %d outside [%d, %d]", v, lower, upper))
	}
	return v
}

// Remaining returns how many scripted values have not been used.
func (s *StaticRandom) Remaining() int {
	return len(s.values) - s.next
}
