package deck

import (
	"errors"
	"fmt"

	"github.com/lox/concentration/internal/randutil"
)

var (
	// ErrInvalidBoardSize is returned for tile counts that cannot be split into pairs.
	ErrInvalidBoardSize = errors.New("invalid board size")
	// ErrInsufficientAlphabet is returned when the alphabet holds fewer symbols than pairs.
	ErrInsufficientAlphabet = errors.New("insufficient alphabet")
)

// Deck is the shuffled sequence of symbols dealt onto a board, one per tile.
type Deck []Symbol

// PickRandomSet draws count distinct symbols from alphabet, uniformly and
// without replacement. The alphabet must hold distinct, non-empty symbols and
// is left untouched.
func PickRandomSet(rng randutil.Source, alphabet Alphabet, count int) ([]Symbol, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative symbol count %d", ErrInvalidBoardSize, count)
	}
	if count > len(alphabet) {
		return nil, fmt.Errorf("%w: need %d symbols, alphabet has %d", ErrInsufficientAlphabet, count, len(alphabet))
	}
	if err := alphabet.Validate(); err != nil {
		return nil, err
	}

	pool := make([]Symbol, len(alphabet))
	copy(pool, alphabet)

	picked := make([]Symbol, 0, count)
	for i := 0; i < count; i++ {
		j := rng.IntN(len(pool))
		picked = append(picked, pool[j])
		pool[j] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]
	}

	return picked, nil
}

// Build returns a deck of tileCount symbols: tileCount/2 distinct symbols from
// alphabet, each present twice, in a uniformly random order.
func Build(rng randutil.Source, alphabet Alphabet, tileCount int) (Deck, error) {
	if tileCount <= 0 || tileCount%2 != 0 {
		return nil, fmt.Errorf("%w: tile count %d is not a positive even number", ErrInvalidBoardSize, tileCount)
	}

	pairs, err := PickRandomSet(rng, alphabet, tileCount/2)
	if err != nil {
		return nil, err
	}

	d := make(Deck, 0, tileCount)
	d = append(d, pairs...)
	d = append(d, pairs...)
	d.shuffle(rng)

	return d, nil
}

// shuffle is an in-place Fisher-Yates permutation.
func (d Deck) shuffle(rng randutil.Source) {
	for i := len(d) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d[i], d[j] = d[j], d[i]
	}
}

// Len returns the number of symbols in the deck
func (d Deck) Len() int {
	return len(d)
}

// Counts returns how many times each symbol occurs in the deck.
func (d Deck) Counts() map[Symbol]int {
	counts := make(map[Symbol]int, len(d)/2)
	for _, s := range d {
		counts[s]++
	}
	return counts
}
