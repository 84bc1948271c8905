package game

import (
	"fmt"

	"github.com/lox/concentration/internal/deck"
)

// TileState is the selection state of a single tile.
type TileState int

const (
	Hidden TileState = iota
	Revealed
	Matched
	Mismatched
)

// String returns the string representation of a tile state
func (s TileState) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Revealed:
		return "revealed"
	case Matched:
		return "matched"
	case Mismatched:
		return "mismatched"
	default:
		return fmt.Sprintf("TileState(%d)", int(s))
	}
}

// Tile is one board cell. Its identity is its index on the board, which never
// changes for the lifetime of the board.
type Tile struct {
	index    int
	board    *Board
	cell     Cell
	symbol   deck.Symbol
	assigned bool
	state    TileState
}

// Index returns the tile's position on the board
func (t *Tile) Index() int {
	return t.index
}

// Cell returns the renderer handle backing this tile
func (t *Tile) Cell() Cell {
	return t.cell
}

// Symbol returns the assigned symbol, or "" before the deal
func (t *Tile) Symbol() deck.Symbol {
	return t.symbol
}

// Assigned reports whether a symbol has been dealt onto the tile
func (t *Tile) Assigned() bool {
	return t.assigned
}

// State returns the current selection state
func (t *Tile) State() TileState {
	return t.state
}

// Assign deals a symbol onto the tile. A tile takes exactly one symbol for its
// lifetime; dealing again requires a new board.
func (t *Tile) Assign(symbol deck.Symbol) error {
	if t.assigned {
		return fmt.Errorf("tile %d: %w", t.index, ErrSymbolAssigned)
	}
	t.symbol = symbol
	t.assigned = true
	t.board.renderer.SetSymbol(t.cell, symbol)
	return nil
}

// Activate reveals a hidden tile and evaluates the board. Activating a tile in
// any other state, or one that has not been dealt yet, does nothing.
func (t *Tile) Activate() error {
	if t.state != Hidden || !t.assigned {
		return nil
	}

	t.setState(Revealed)
	t.board.logger.Debug("Tile revealed", "tile", t.index, "symbol", t.symbol)

	return t.board.Evaluate()
}

// clear hides a mismatched tile again. Other states are left alone.
func (t *Tile) clear() {
	if t.state != Mismatched {
		return
	}
	t.setState(Hidden)
}

// setState moves the tile to s and mirrors it onto the renderer flags.
func (t *Tile) setState(s TileState) {
	t.state = s

	r := t.board.renderer
	switch s {
	case Hidden:
		r.RemoveFlag(t.cell, FlagSelected)
		r.RemoveFlag(t.cell, FlagMatched)
		r.RemoveFlag(t.cell, FlagFailed)
	case Revealed:
		r.AddFlag(t.cell, FlagSelected)
	case Matched:
		r.AddFlag(t.cell, FlagMatched)
	case Mismatched:
		r.AddFlag(t.cell, FlagFailed)
	}
}
