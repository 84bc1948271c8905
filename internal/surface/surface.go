// Package surface provides an in-memory game.Renderer. It backs the terminal
// front end, the WebSocket server sessions and the simulator, none of which
// need a retained widget tree of their own.
package surface

import (
	"errors"
	"fmt"

	"github.com/lox/concentration/internal/deck"
	"github.com/lox/concentration/internal/game"
	"github.com/lox/concentration/internal/protocol"
)

// ErrUnknownCell is returned when a handle was not issued by this surface
var ErrUnknownCell = errors.New("unknown cell")

// flagOrder fixes the order flags are reported in
var flagOrder = []game.Flag{game.FlagSelected, game.FlagMatched, game.FlagFailed}

type cell struct {
	symbol    deck.Symbol
	flags     map[game.Flag]bool
	container string
	handler   func() error
}

// Surface is a flat list of cells. It is not safe for concurrent use; the
// owning host drives it from a single goroutine.
type Surface struct {
	cells []*cell
}

// New returns an empty surface
func New() *Surface {
	return &Surface{}
}

func (s *Surface) CreateCell() game.Cell {
	s.cells = append(s.cells, &cell{flags: make(map[game.Flag]bool)})
	return game.Cell(len(s.cells) - 1)
}

func (s *Surface) Attach(c game.Cell, container string) {
	if cl := s.get(c); cl != nil {
		cl.container = container
	}
}

func (s *Surface) SetSymbol(c game.Cell, symbol deck.Symbol) {
	if cl := s.get(c); cl != nil {
		cl.symbol = symbol
	}
}

func (s *Surface) Symbol(c game.Cell) deck.Symbol {
	if cl := s.get(c); cl != nil {
		return cl.symbol
	}
	return ""
}

func (s *Surface) AddFlag(c game.Cell, flag game.Flag) {
	if cl := s.get(c); cl != nil {
		cl.flags[flag] = true
	}
}

func (s *Surface) HasFlag(c game.Cell, flag game.Flag) bool {
	if cl := s.get(c); cl != nil {
		return cl.flags[flag]
	}
	return false
}

func (s *Surface) RemoveFlag(c game.Cell, flag game.Flag) {
	if cl := s.get(c); cl != nil {
		delete(cl.flags, flag)
	}
}

func (s *Surface) OnActivate(c game.Cell, handler func() error) {
	if cl := s.get(c); cl != nil {
		cl.handler = handler
	}
}

// Len returns the number of cells created so far
func (s *Surface) Len() int {
	return len(s.cells)
}

// Activate fires the handler bound to c, as a click or key press would.
func (s *Surface) Activate(c game.Cell) error {
	cl := s.get(c)
	if cl == nil {
		return fmt.Errorf("%w: %d", ErrUnknownCell, c)
	}
	if cl.handler == nil {
		return nil
	}
	return cl.handler()
}

// FaceUp reports whether the cell's symbol should be visible
func (s *Surface) FaceUp(c game.Cell) bool {
	return s.HasFlag(c, game.FlagSelected)
}

// Snapshot describes every cell for a remote peer. Symbols of face-down cells
// are withheld.
func (s *Surface) Snapshot(size int, solved bool) protocol.BoardData {
	data := protocol.BoardData{
		Size:   size,
		Solved: solved,
		Cells:  make([]protocol.CellData, len(s.cells)),
	}

	for i, cl := range s.cells {
		cd := protocol.CellData{Index: i}
		for _, f := range flagOrder {
			if cl.flags[f] {
				cd.Flags = append(cd.Flags, string(f))
			}
		}
		if cl.flags[game.FlagSelected] {
			cd.Symbol = string(cl.symbol)
		}
		data.Cells[i] = cd
	}

	return data
}

// Load rebuilds a surface from a snapshot. Each cell's handler calls activate
// with the cell index.
func Load(data protocol.BoardData, activate func(index int) error) *Surface {
	s := &Surface{cells: make([]*cell, len(data.Cells))}

	for i, cd := range data.Cells {
		cl := &cell{
			symbol: deck.Symbol(cd.Symbol),
			flags:  make(map[game.Flag]bool, len(cd.Flags)),
		}
		for _, f := range cd.Flags {
			cl.flags[game.Flag(f)] = true
		}
		if activate != nil {
			index := cd.Index
			cl.handler = func() error { return activate(index) }
		}
		s.cells[i] = cl
	}

	return s
}

func (s *Surface) get(c game.Cell) *cell {
	if int(c) < 0 || int(c) >= len(s.cells) {
		return nil
	}
	return s.cells[c]
}
