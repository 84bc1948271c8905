// Package simulator plays batches of headless games with automated players.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/concentration/internal/bot"
	"github.com/lox/concentration/internal/deck"
	"github.com/lox/concentration/internal/fileutil"
	"github.com/lox/concentration/internal/game"
	"github.com/lox/concentration/internal/notify"
	"github.com/lox/concentration/internal/randutil"
	"github.com/lox/concentration/internal/surface"
	"golang.org/x/sync/errgroup"
)

// ErrStalled is returned when a strategy fails to finish a game
var ErrStalled = errors.New("game stalled")

// Config holds configuration for running simulations
type Config struct {
	Games    int
	Size     int
	Seed     int64
	Workers  int
	Strategy string
	Alphabet deck.Alphabet
	Logger   *log.Logger
}

// Result is the outcome of one game
type Result struct {
	Seed        int64
	Activations int
	Mismatches  int
	Matches     int
}

// Summary aggregates one measurement across games
type Summary struct {
	Mean float64 `json:"mean"`
	Min  int     `json:"min"`
	Max  int     `json:"max"`
}

// Stats aggregates a batch
type Stats struct {
	Games       int           `json:"games"`
	Strategy    string        `json:"strategy"`
	Size        int           `json:"size"`
	Seed        int64         `json:"seed"`
	Activations Summary       `json:"activations"`
	Mismatches  Summary       `json:"mismatches"`
	Duration    time.Duration `json:"durationNs"`
}

// WriteFile saves the stats as JSON
func (s *Stats) WriteFile(path string) error {
	return fileutil.WriteJSON(path, s)
}

// Run plays cfg.Games independent games in parallel. Game i deals from
// Seed+i so batches are reproducible regardless of the worker count.
func Run(ctx context.Context, cfg Config) (*Stats, error) {
	if cfg.Games <= 0 {
		return nil, fmt.Errorf("games must be positive, got %d", cfg.Games)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Size == 0 {
		cfg.Size = game.DefaultSize
	}
	if cfg.Strategy == "" {
		cfg.Strategy = bot.StrategyMemory
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if _, err := bot.New(cfg.Strategy, randutil.New(cfg.Seed)); err != nil {
		return nil, err
	}

	logger := cfg.Logger.WithPrefix("simulator")
	start := time.Now()
	results := make([]Result, cfg.Games)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for i := 0; i < cfg.Games; i++ {
		if gctx.Err() != nil {
			break
		}
		seed := cfg.Seed + int64(i)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := Play(cfg, seed)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i, seed, err)
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stats := summarize(results)
	stats.Strategy = cfg.Strategy
	stats.Size = cfg.Size
	stats.Seed = cfg.Seed
	stats.Duration = time.Since(start)

	logger.Debug("Simulation complete", "games", stats.Games, "duration", stats.Duration)
	return stats, nil
}

// Play runs a single game to completion on a headless surface
func Play(cfg Config, seed int64) (Result, error) {
	result := Result{Seed: seed}

	strategy, err := bot.New(cfg.Strategy, randutil.New(^seed))
	if err != nil {
		return result, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	surf := surface.New()
	g, err := game.New(game.Config{
		Size:     cfg.Size,
		Alphabet: cfg.Alphabet,
		Rand:     randutil.New(seed),
		Renderer: surf,
		Notifier: notify.Func(func(message string, _ time.Duration) {
			switch message {
			case game.MessageMatch:
				result.Matches++
			case game.MessageNoMatch:
				result.Mismatches++
			}
		}),
		Logger: logger,
	})
	if err != nil {
		return result, err
	}
	if err := g.Start(); err != nil {
		return result, err
	}

	limit := 100 * surf.Len()
	for !g.Solved() {
		if result.Activations >= limit {
			return result, fmt.Errorf("%w after %d activations", ErrStalled, result.Activations)
		}
		c, ok := strategy.Next(surf)
		if !ok {
			return result, fmt.Errorf("%w: no playable cell", ErrStalled)
		}
		if err := surf.Activate(c); err != nil {
			return result, err
		}
		result.Activations++
	}

	return result, nil
}

func summarize(results []Result) *Stats {
	stats := &Stats{Games: len(results)}
	activations := make([]int, len(results))
	mismatches := make([]int, len(results))
	for i, r := range results {
		activations[i] = r.Activations
		mismatches[i] = r.Mismatches
	}
	stats.Activations = summary(activations)
	stats.Mismatches = summary(mismatches)
	return stats
}

func summary(values []int) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	s := Summary{Min: math.MaxInt, Max: math.MinInt}
	total := 0
	for _, v := range values {
		total += v
		s.Min = min(s.Min, v)
		s.Max = max(s.Max, v)
	}
	s.Mean = float64(total) / float64(len(values))
	return s
}
