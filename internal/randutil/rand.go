package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// Source is the randomness capability the deck generator and bots draw from.
// *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// New returns a *rand.Rand seeded deterministically from the provided int64.
// The helper centralises how we derive the two 64-bit seeds required by rand/v2
// so that all call sites get reproducible sequences.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Global returns the process-wide generator. It is safe for concurrent use.
func Global() Source {
	return globalSource{}
}

// sequence replays scripted values, reduced modulo n.
type sequence struct {
	values []int
	pos    int
}

// Sequence returns a Source that yields the given values in order, cycling when
// exhausted. Each value is reduced into [0,n) so scripts stay valid as the
// range shrinks. An empty script always yields 0.
func Sequence(values ...int) Source {
	return &sequence{values: values}
}

func (s *sequence) IntN(n int) int {
	if n <= 0 {
		panic("randutil: invalid argument to IntN")
	}
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.pos%len(s.values)]
	s.pos++
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
