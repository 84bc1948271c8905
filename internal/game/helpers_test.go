package game

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/concentration/internal/deck"
	"github.com/stretchr/testify/require"
)

type fakeCell struct {
	symbol    deck.Symbol
	flags     map[Flag]bool
	container string
	handler   func() error
}

// fakeRenderer records everything the board asks of it
type fakeRenderer struct {
	cells []*fakeCell
}

func (r *fakeRenderer) CreateCell() Cell {
	r.cells = append(r.cells, &fakeCell{flags: map[Flag]bool{}})
	return Cell(len(r.cells) - 1)
}

func (r *fakeRenderer) Attach(c Cell, container string)         { r.cells[c].container = container }
func (r *fakeRenderer) SetSymbol(c Cell, s deck.Symbol)         { r.cells[c].symbol = s }
func (r *fakeRenderer) Symbol(c Cell) deck.Symbol               { return r.cells[c].symbol }
func (r *fakeRenderer) AddFlag(c Cell, f Flag)                  { r.cells[c].flags[f] = true }
func (r *fakeRenderer) HasFlag(c Cell, f Flag) bool             { return r.cells[c].flags[f] }
func (r *fakeRenderer) RemoveFlag(c Cell, f Flag)               { delete(r.cells[c].flags, f) }
func (r *fakeRenderer) OnActivate(c Cell, handler func() error) { r.cells[c].handler = handler }

// click fires the bound handler the way a UI event would
func (r *fakeRenderer) click(t *testing.T, c Cell) error {
	t.Helper()
	require.NotNil(t, r.cells[c].handler, "cell %d has no handler", c)
	return r.cells[c].handler()
}

type shown struct {
	message  string
	duration time.Duration
}

type recordingNotifier struct {
	shown []shown
}

func (n *recordingNotifier) Show(message string, d time.Duration) {
	n.shown = append(n.shown, shown{message, d})
}

func (n *recordingNotifier) messages() []string {
	out := make([]string, len(n.shown))
	for i, s := range n.shown {
		out[i] = s.message
	}
	return out
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// newDealtBoard builds a size x size board and deals symbols in order
func newDealtBoard(t *testing.T, size int, symbols ...deck.Symbol) (*Board, *fakeRenderer, *recordingNotifier) {
	t.Helper()

	r := &fakeRenderer{}
	n := &recordingNotifier{}
	b, err := NewBoard(BoardOptions{Size: size, Renderer: r, Notifier: n, Logger: quietLogger()})
	require.NoError(t, err)
	require.Len(t, symbols, b.TileCount())

	for i, s := range symbols {
		require.NoError(t, b.tiles[i].Assign(s))
	}
	return b, r, n
}

func states(b *Board) []TileState {
	out := make([]TileState, len(b.tiles))
	for i, t := range b.tiles {
		out[i] = t.state
	}
	return out
}
