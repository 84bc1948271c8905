package deck

import (
	"errors"
	"fmt"
	"strings"
)

// Symbol is one pictogram labelling a pair of tiles. Symbols are only ever
// compared for equality.
type Symbol string

// Alphabet is an ordered set of distinct symbols a deck is drawn from.
type Alphabet []Symbol

const defaultPictos = "💈|🔠|🖲|🍳|🎂|📉|🌎|🍍|💎|🐛|🎯|🏢|🎭|💧|🍽|🚿|👮|👜|🍊|🍓|🍕|👙|👂|📊|🏁|🏡|📂|⛏|🎣|😙|🌏|👽|😨|🍖|⚔|🚪|💜|📺|📔|🌴|🕛|🍂|🚅|💀|👇|🍦|🍷|🎖|📝|🏆|🕷|💓|💹|👌|😗|😅|🍿|📮"

// DefaultSeparator separates symbols in an alphabet string.
const DefaultSeparator = "|"

var (
	ErrEmptySymbol     = errors.New("empty symbol")
	ErrDuplicateSymbol = errors.New("duplicate symbol")
)

// DefaultAlphabet returns a fresh copy of the built-in pictogram set.
func DefaultAlphabet() Alphabet {
	a, err := ParseAlphabet(defaultPictos, DefaultSeparator)
	if err != nil {
		panic(err)
	}
	return a
}

// ParseAlphabet splits s on sep. Surrounding whitespace is trimmed from each
// symbol; empty or repeated symbols are rejected.
func ParseAlphabet(s, sep string) (Alphabet, error) {
	if sep == "" {
		sep = DefaultSeparator
	}

	parts := strings.Split(s, sep)
	seen := make(map[Symbol]struct{}, len(parts))
	alphabet := make(Alphabet, 0, len(parts))

	for i, part := range parts {
		sym := Symbol(strings.TrimSpace(part))
		if sym == "" {
			return nil, fmt.Errorf("symbol %d: %w", i, ErrEmptySymbol)
		}
		if _, dup := seen[sym]; dup {
			return nil, fmt.Errorf("symbol %d %q: %w", i, sym, ErrDuplicateSymbol)
		}
		seen[sym] = struct{}{}
		alphabet = append(alphabet, sym)
	}

	return alphabet, nil
}

// Validate reports the first empty or repeated symbol in a.
func (a Alphabet) Validate() error {
	seen := make(map[Symbol]struct{}, len(a))
	for i, sym := range a {
		if sym == "" {
			return fmt.Errorf("symbol %d: %w", i, ErrEmptySymbol)
		}
		if _, dup := seen[sym]; dup {
			return fmt.Errorf("symbol %d %q: %w", i, sym, ErrDuplicateSymbol)
		}
		seen[sym] = struct{}{}
	}
	return nil
}

// String joins the alphabet with the default separator.
func (a Alphabet) String() string {
	parts := make([]string, len(a))
	for i, s := range a {
		parts[i] = string(s)
	}
	return strings.Join(parts, DefaultSeparator)
}
