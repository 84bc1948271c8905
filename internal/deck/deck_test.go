package deck

import (
	"testing"

	"github.com/lox/concentration/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAlphabet(t *testing.T) {
	a := DefaultAlphabet()
	assert.Len(t, a, 58)

	// Callers get their own copy
	a[0] = "x"
	assert.NotEqual(t, Symbol("x"), DefaultAlphabet()[0])
}

func TestParseAlphabet(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		sep      string
		expected Alphabet
		wantErr  error
	}{
		{
			name:     "pipe separated",
			input:    "A|B|C",
			sep:      "|",
			expected: Alphabet{"A", "B", "C"},
		},
		{
			name:     "default separator and whitespace",
			input:    " A | B ",
			expected: Alphabet{"A", "B"},
		},
		{
			name:     "custom separator",
			input:    "🍕,🍓",
			sep:      ",",
			expected: Alphabet{"🍕", "🍓"},
		},
		{
			name:    "empty symbol",
			input:   "A||B",
			wantErr: ErrEmptySymbol,
		},
		{
			name:    "duplicate symbol",
			input:   "A|B|A",
			wantErr: ErrDuplicateSymbol,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAlphabet(tt.input, tt.sep)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestAlphabetValidate(t *testing.T) {
	assert.NoError(t, DefaultAlphabet().Validate())
	assert.NoError(t, Alphabet{}.Validate())
	assert.ErrorIs(t, Alphabet{"A", "B", "A"}.Validate(), ErrDuplicateSymbol)
	assert.ErrorIs(t, Alphabet{"A", ""}.Validate(), ErrEmptySymbol)
}

func TestPickRandomSet(t *testing.T) {
	alphabet := Alphabet{"A", "B", "C", "D"}

	t.Run("distinct symbols", func(t *testing.T) {
		rng := randutil.New(1)
		for i := 0; i < 50; i++ {
			picked, err := PickRandomSet(rng, alphabet, 3)
			require.NoError(t, err)
			require.Len(t, picked, 3)

			seen := map[Symbol]bool{}
			for _, s := range picked {
				assert.False(t, seen[s], "symbol %q picked twice", s)
				assert.Contains(t, alphabet, s)
				seen[s] = true
			}
		}
	})

	t.Run("scripted draw without replacement", func(t *testing.T) {
		// index 1 takes B, D moves into its slot, index 1 then takes D
		picked, err := PickRandomSet(randutil.Sequence(1, 1), alphabet, 2)
		require.NoError(t, err)
		assert.Equal(t, []Symbol{"B", "D"}, picked)
	})

	t.Run("alphabet untouched", func(t *testing.T) {
		_, err := PickRandomSet(randutil.New(2), alphabet, 4)
		require.NoError(t, err)
		assert.Equal(t, Alphabet{"A", "B", "C", "D"}, alphabet)
	})

	t.Run("whole alphabet", func(t *testing.T) {
		picked, err := PickRandomSet(randutil.New(3), alphabet, 4)
		require.NoError(t, err)
		assert.ElementsMatch(t, []Symbol(alphabet), picked)
	})

	t.Run("too many", func(t *testing.T) {
		_, err := PickRandomSet(randutil.New(4), alphabet, 5)
		assert.ErrorIs(t, err, ErrInsufficientAlphabet)
	})
}

func TestBuild(t *testing.T) {
	t.Run("every symbol exactly twice", func(t *testing.T) {
		rng := randutil.New(7)
		for _, n := range []int{2, 4, 16, 36, 64, 116} {
			d, err := Build(rng, DefaultAlphabet(), n)
			require.NoError(t, err, "tile count %d", n)
			assert.Equal(t, n, d.Len())

			counts := d.Counts()
			assert.Len(t, counts, n/2)
			for sym, c := range counts {
				assert.Equal(t, 2, c, "symbol %q", sym)
			}
		}
	})

	t.Run("odd tile count", func(t *testing.T) {
		for _, n := range []int{1, 3, 9, 25} {
			_, err := Build(randutil.New(1), DefaultAlphabet(), n)
			assert.ErrorIs(t, err, ErrInvalidBoardSize, "tile count %d", n)
		}
	})

	t.Run("non-positive tile count", func(t *testing.T) {
		_, err := Build(randutil.New(1), DefaultAlphabet(), 0)
		assert.ErrorIs(t, err, ErrInvalidBoardSize)
		_, err = Build(randutil.New(1), DefaultAlphabet(), -4)
		assert.ErrorIs(t, err, ErrInvalidBoardSize)
	})

	t.Run("insufficient alphabet", func(t *testing.T) {
		_, err := Build(randutil.New(1), Alphabet{"A", "B"}, 6)
		assert.ErrorIs(t, err, ErrInsufficientAlphabet)
	})

	t.Run("repeated symbol", func(t *testing.T) {
		_, err := Build(randutil.New(1), Alphabet{"A", "A", "B"}, 4)
		assert.ErrorIs(t, err, ErrDuplicateSymbol)
	})

	t.Run("empty symbol", func(t *testing.T) {
		_, err := Build(randutil.New(1), Alphabet{"A", "", "B"}, 4)
		assert.ErrorIs(t, err, ErrEmptySymbol)
	})

	t.Run("deterministic with seed", func(t *testing.T) {
		a, err := Build(randutil.New(99), DefaultAlphabet(), 16)
		require.NoError(t, err)
		b, err := Build(randutil.New(99), DefaultAlphabet(), 16)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("scripted deck", func(t *testing.T) {
		// Picks A, then C which moved into A's slot; the all-zero shuffle
		// turns [A C A C] into [C A C A]
		d, err := Build(randutil.Sequence(0), Alphabet{"A", "B", "C"}, 4)
		require.NoError(t, err)
		assert.Equal(t, Deck{"C", "A", "C", "A"}, d)
	})
}
