package bot

import (
	"github.com/lox/concentration/internal/deck"
	"github.com/lox/concentration/internal/game"
	"github.com/lox/concentration/internal/randutil"
)

// Memory remembers every symbol it has seen face up. It plays a known pair
// whenever it can and otherwise explores unseen cells.
type Memory struct {
	rng   randutil.Source
	seen  map[game.Cell]deck.Symbol
	where map[deck.Symbol][]game.Cell
}

func NewMemory(rng randutil.Source) *Memory {
	return &Memory{
		rng:   rng,
		seen:  make(map[game.Cell]deck.Symbol),
		where: make(map[deck.Symbol][]game.Cell),
	}
}

func (m *Memory) Next(v View) (game.Cell, bool) {
	m.observe(v)

	var first game.Cell = -1
	for i := 0; i < v.Len(); i++ {
		if c := game.Cell(i); pending(v, c) {
			first = c
			break
		}
	}

	if first >= 0 {
		// Second pick: the partner if we know it
		if partner, ok := m.partner(v, first); ok {
			return partner, true
		}
		return m.explore(v)
	}

	// First pick: one half of a known pair
	for i := 0; i < v.Len(); i++ {
		c := game.Cell(i)
		if !hidden(v, c) {
			continue
		}
		if _, ok := m.partner(v, c); ok {
			return c, true
		}
	}

	return m.explore(v)
}

// observe records every face-up symbol and forgets matched cells
func (m *Memory) observe(v View) {
	for i := 0; i < v.Len(); i++ {
		c := game.Cell(i)
		if !faceUp(v, c) {
			continue
		}
		if _, known := m.seen[c]; known {
			continue
		}
		sym := v.Symbol(c)
		m.seen[c] = sym
		m.where[sym] = append(m.where[sym], c)
	}
}

// partner returns the other known cell holding c's symbol, as long as it
// can take part in a pair (it is not already matched).
func (m *Memory) partner(v View, c game.Cell) (game.Cell, bool) {
	sym, ok := m.seen[c]
	if !ok {
		return 0, false
	}
	for _, other := range m.where[sym] {
		if other != c && !v.HasFlag(other, game.FlagMatched) {
			return other, true
		}
	}
	return 0, false
}

// explore picks a random hidden cell we have never seen, falling back to
// any hidden cell.
func (m *Memory) explore(v View) (game.Cell, bool) {
	var unseen, rest []game.Cell
	for i := 0; i < v.Len(); i++ {
		c := game.Cell(i)
		if !hidden(v, c) {
			continue
		}
		rest = append(rest, c)
		if _, known := m.seen[c]; !known {
			unseen = append(unseen, c)
		}
	}

	switch {
	case len(unseen) > 0:
		return unseen[m.rng.IntN(len(unseen))], true
	case len(rest) > 0:
		return rest[m.rng.IntN(len(rest))], true
	default:
		return 0, false
	}
}
