package game

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/concentration/internal/deck"
	"github.com/lox/concentration/internal/randutil"
)

// Config wires a Game to its collaborators. Zero values fall back to the
// defaults: a 4x4 board, the built-in alphabet and the process-wide random
// generator.
type Config struct {
	Size           int
	Alphabet       deck.Alphabet
	Rand           randutil.Source
	Renderer       Renderer
	Notifier       Notifier
	NotifyDuration time.Duration
	Container      string
	Logger         *log.Logger
}

// Game is the composition root for one independent game instance.
type Game struct {
	board    *Board
	alphabet deck.Alphabet
	rng      randutil.Source
	logger   *log.Logger
	dealt    bool
}

// New builds the board and checks that the alphabet can supply one symbol per
// pair. Symbols are not dealt until Start.
func New(cfg Config) (*Game, error) {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Alphabet == nil {
		cfg.Alphabet = deck.DefaultAlphabet()
	}
	if cfg.Rand == nil {
		cfg.Rand = randutil.Global()
	}

	if cfg.Size == 0 {
		cfg.Size = DefaultSize
	}

	// Reject boards the alphabet cannot fill before any cell is created
	count, err := TileCount(cfg.Size)
	if err != nil {
		return nil, err
	}
	if pairs := count / 2; pairs > len(cfg.Alphabet) {
		return nil, fmt.Errorf("%w: %d pairs need %d symbols, alphabet has %d",
			ErrInsufficientAlphabet, pairs, pairs, len(cfg.Alphabet))
	}
	if err := cfg.Alphabet.Validate(); err != nil {
		return nil, err
	}

	board, err := NewBoard(BoardOptions{
		Size:           cfg.Size,
		Renderer:       cfg.Renderer,
		Notifier:       cfg.Notifier,
		NotifyDuration: cfg.NotifyDuration,
		Container:      cfg.Container,
		Logger:         cfg.Logger,
	})
	if err != nil {
		return nil, err
	}

	return &Game{
		board:    board,
		alphabet: cfg.Alphabet,
		rng:      cfg.Rand,
		logger:   cfg.Logger.WithPrefix("game"),
	}, nil
}

// Board returns the game's board
func (g *Game) Board() *Board {
	return g.board
}

// Start deals a freshly shuffled deck onto the board, one symbol per tile in
// deck order. A game is dealt once; start a new Game to play again.
func (g *Game) Start() error {
	if g.dealt {
		return ErrAlreadyDealt
	}

	d, err := deck.Build(g.rng, g.alphabet, g.board.TileCount())
	if err != nil {
		return fmt.Errorf("failed to build deck: %w", err)
	}

	for i, sym := range d {
		if err := g.board.tiles[i].Assign(sym); err != nil {
			return err
		}
	}
	g.dealt = true

	g.logger.Info("Game started", "size", g.board.Size(), "tiles", d.Len())
	return nil
}

// Started reports whether the deck has been dealt
func (g *Game) Started() bool {
	return g.dealt
}

// Activate activates the tile at index i.
func (g *Game) Activate(i int) error {
	t, err := g.board.Tile(i)
	if err != nil {
		return err
	}
	return t.Activate()
}

// Solved reports whether every pair has been found
func (g *Game) Solved() bool {
	return g.dealt && g.board.Solved()
}
