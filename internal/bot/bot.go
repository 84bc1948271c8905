// Package bot contains automated players. Bots only see what a human would:
// the face-up symbols and visual flags of each cell.
package bot

import (
	"fmt"

	"github.com/lox/concentration/internal/deck"
	"github.com/lox/concentration/internal/game"
	"github.com/lox/concentration/internal/randutil"
)

// View is the visible state of a board
type View interface {
	Len() int
	Symbol(c game.Cell) deck.Symbol
	HasFlag(c game.Cell, flag game.Flag) bool
}

// Strategy picks the next cell to activate
type Strategy interface {
	// Next returns the cell to activate, or false when no cell can be
	// activated.
	Next(v View) (game.Cell, bool)
}

// Names of the built-in strategies
const (
	StrategyMemory = "memory"
	StrategyRandom = "random"
)

// New returns the named strategy drawing on rng
func New(name string, rng randutil.Source) (Strategy, error) {
	switch name {
	case StrategyMemory, "":
		return NewMemory(rng), nil
	case StrategyRandom:
		return NewRandom(rng), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}

func hidden(v View, c game.Cell) bool {
	return !v.HasFlag(c, game.FlagSelected)
}

func faceUp(v View, c game.Cell) bool {
	return v.HasFlag(c, game.FlagSelected)
}

func pending(v View, c game.Cell) bool {
	return faceUp(v, c) && !v.HasFlag(c, game.FlagMatched) && !v.HasFlag(c, game.FlagFailed)
}

// Random picks uniformly among hidden cells and never remembers anything
type Random struct {
	rng randutil.Source
}

func NewRandom(rng randutil.Source) *Random {
	return &Random{rng: rng}
}

func (r *Random) Next(v View) (game.Cell, bool) {
	var candidates []game.Cell
	for i := 0; i < v.Len(); i++ {
		if c := game.Cell(i); hidden(v, c) {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}
	return candidates[r.rng.IntN(len(candidates))], true
}
