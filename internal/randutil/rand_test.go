package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}

func TestSequence(t *testing.T) {
	t.Run("replays and cycles", func(t *testing.T) {
		s := Sequence(1, 2, 3)
		got := []int{s.IntN(10), s.IntN(10), s.IntN(10), s.IntN(10)}
		assert.Equal(t, []int{1, 2, 3, 1}, got)
	})

	t.Run("reduces into range", func(t *testing.T) {
		s := Sequence(7, -1)
		assert.Equal(t, 1, s.IntN(3))
		assert.Equal(t, 2, s.IntN(3))
	})

	t.Run("empty script yields zero", func(t *testing.T) {
		assert.Equal(t, 0, Sequence().IntN(5))
	})
}

func TestGlobalInRange(t *testing.T) {
	g := Global()
	for i := 0; i < 100; i++ {
		v := g.IntN(4)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 4)
	}
}
