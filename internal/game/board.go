package game

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// DefaultSize is the side length of the default 4x4 board
	DefaultSize = 4
	// DefaultContainer names the parent element cells are attached to
	DefaultContainer = "board"
)

// BoardOptions configures a Board.
type BoardOptions struct {
	Size           int
	Renderer       Renderer
	Notifier       Notifier
	NotifyDuration time.Duration
	Container      string
	Logger         *log.Logger
}

// Board owns a fixed square grid of tiles and resolves revealed pairs.
type Board struct {
	size           int
	tiles          []*Tile
	renderer       Renderer
	notifier       Notifier
	notifyDuration time.Duration
	logger         *log.Logger
}

// NewBoard creates size*size empty tiles, one renderer cell each, and binds
// their activation. The tile count must be even so every tile has a partner.
func NewBoard(opts BoardOptions) (*Board, error) {
	if opts.Renderer == nil {
		return nil, ErrNoRenderer
	}
	if opts.Size == 0 {
		opts.Size = DefaultSize
	}
	count, err := TileCount(opts.Size)
	if err != nil {
		return nil, err
	}
	if opts.Notifier == nil {
		opts.Notifier = nopNotifier{}
	}
	if opts.NotifyDuration <= 0 {
		opts.NotifyDuration = DefaultNotifyDuration
	}
	if opts.Container == "" {
		opts.Container = DefaultContainer
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	b := &Board{
		size:           opts.Size,
		tiles:          make([]*Tile, count),
		renderer:       opts.Renderer,
		notifier:       opts.Notifier,
		notifyDuration: opts.NotifyDuration,
		logger:         opts.Logger.WithPrefix("board"),
	}

	for i := range b.tiles {
		cell := b.renderer.CreateCell()
		b.renderer.Attach(cell, opts.Container)

		t := &Tile{index: i, board: b, cell: cell}
		b.renderer.OnActivate(cell, t.Activate)
		b.tiles[i] = t
	}

	return b, nil
}

// TileCount returns the number of tiles on a size x size board. The count
// must be positive, even and representable as an int.
func TileCount(size int) (int, error) {
	if size <= 0 || size > math.MaxInt/size {
		return 0, fmt.Errorf("%w: %dx%d board", ErrInvalidBoardSize, size, size)
	}
	if count := size * size; count%2 == 0 {
		return count, nil
	}
	return 0, fmt.Errorf("%w: %dx%d board has no even tile count", ErrInvalidBoardSize, size, size)
}

// Size returns the side length of the grid
func (b *Board) Size() int {
	return b.size
}

// TileCount returns the number of tiles on the board
func (b *Board) TileCount() int {
	return len(b.tiles)
}

// Tiles returns the tiles in board order
func (b *Board) Tiles() []*Tile {
	return b.tiles
}

// Tile returns the tile at index i
func (b *Board) Tile(i int) (*Tile, error) {
	if i < 0 || i >= len(b.tiles) {
		return nil, fmt.Errorf("%w: %d (board has %d tiles)", ErrTileOutOfRange, i, len(b.tiles))
	}
	return b.tiles[i], nil
}

// Pending returns the revealed-but-unresolved tiles in board order.
func (b *Board) Pending() []*Tile {
	var pending []*Tile
	for _, t := range b.tiles {
		if t.state == Revealed {
			pending = append(pending, t)
		}
	}
	return pending
}

// Solved reports whether every tile has been matched.
func (b *Board) Solved() bool {
	for _, t := range b.tiles {
		if t.state != Matched {
			return false
		}
	}
	return true
}

// Evaluate resolves the revealed tiles after an activation. A lone revealed
// tile first hides the previous mismatched pair; two revealed tiles are
// resolved to matched or mismatched with a single notification.
func (b *Board) Evaluate() error {
	pending := b.Pending()

	switch len(pending) {
	case 0:
		return nil

	case 1:
		for _, t := range b.tiles {
			t.clear()
		}
		return nil

	case 2:
		first, second := pending[0], pending[1]
		if first.symbol == second.symbol {
			first.setState(Matched)
			second.setState(Matched)
			b.logger.Info("Match", "tiles", []int{first.index, second.index}, "symbol", first.symbol)
			b.notifier.Show(MessageMatch, b.notifyDuration)
		} else {
			first.setState(Mismatched)
			second.setState(Mismatched)
			b.logger.Debug("No match", "tiles", []int{first.index, second.index})
			b.notifier.Show(MessageNoMatch, b.notifyDuration)
		}
		return nil

	default:
		indices := make([]int, len(pending))
		for i, t := range pending {
			indices[i] = t.index
		}
		b.logger.Error("More than two tiles revealed", "tiles", indices)
		return fmt.Errorf("%w: %d tiles revealed %v", ErrInvariantViolation, len(pending), indices)
	}
}
