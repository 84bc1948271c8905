package game

import (
	"errors"
	"time"

	"github.com/lox/concentration/internal/deck"
)

// Cell is a renderer-issued handle for one on-screen tile.
type Cell int

// Flag is a visual state marker a renderer attaches to a cell.
type Flag string

const (
	FlagSelected Flag = "selected"
	FlagMatched  Flag = "matched"
	FlagFailed   Flag = "failed"
)

// Renderer creates and mutates the on-screen representation of tiles.
// The core never references a concrete rendering technology.
type Renderer interface {
	CreateCell() Cell
	Attach(cell Cell, container string)
	SetSymbol(cell Cell, symbol deck.Symbol)
	Symbol(cell Cell) deck.Symbol
	AddFlag(cell Cell, flag Flag)
	HasFlag(cell Cell, flag Flag) bool
	RemoveFlag(cell Cell, flag Flag)
	// OnActivate binds the input handler for a cell. Errors returned by the
	// handler indicate a broken board and must be surfaced by the host.
	OnActivate(cell Cell, handler func() error)
}

// Notifier shows transient feedback that clears itself after d.
type Notifier interface {
	Show(message string, d time.Duration)
}

// DefaultNotifyDuration is how long feedback stays visible unless configured.
const DefaultNotifyDuration = 1500 * time.Millisecond

// Feedback messages sent once per resolved pair
const (
	MessageMatch   = "match"
	MessageNoMatch = "no match"
)

var (
	ErrInvalidBoardSize     = deck.ErrInvalidBoardSize
	ErrInsufficientAlphabet = deck.ErrInsufficientAlphabet
	ErrEmptySymbol          = deck.ErrEmptySymbol
	ErrDuplicateSymbol      = deck.ErrDuplicateSymbol

	// ErrInvariantViolation means more than two tiles were revealed at once,
	// which only happens if the hidden-only activation guard is broken.
	ErrInvariantViolation = errors.New("invariant violation")
	ErrSymbolAssigned     = errors.New("tile symbol already assigned")
	ErrAlreadyDealt       = errors.New("game already dealt")
	ErrTileOutOfRange     = errors.New("tile index out of range")
	ErrNoRenderer         = errors.New("renderer is required")
)

type nopNotifier struct{}

func (nopNotifier) Show(string, time.Duration) {}
