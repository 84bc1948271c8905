package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/concentration/cmd/concentration/shared"
	"github.com/lox/concentration/internal/simulator"
	"github.com/lox/concentration/internal/tui"
)

// SimulateCmd plays batches of games with a built-in strategy
type SimulateCmd struct {
	Games    int    `default:"1000" help:"Number of games to play"`
	Size     int    `help:"Board side length (overrides config)"`
	Workers  int    `help:"Parallel workers (0 = number of CPUs)"`
	Strategy string `default:"memory" enum:"memory,random" help:"Player strategy: memory, random"`
	Output   string `short:"o" help:"Write results as JSON to this file"`
}

func (c *SimulateCmd) Run(globals *Globals) error {
	cfg, err := globals.loadConfig()
	if err != nil {
		return err
	}
	if c.Size != 0 {
		cfg.Game.Size = c.Size
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := shared.SetupLogger(os.Stderr, cfg.LogLevel())

	alphabet, err := cfg.Alphabet()
	if err != nil {
		return err
	}

	workers := c.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	// per-move logging from thousands of games drowns the summary
	gameLogger := logger.With()
	if !globals.Debug {
		gameLogger.SetLevel(log.WarnLevel)
	}

	ctx := shared.SetupSignalHandler(logger)
	stats, err := simulator.Run(ctx, simulator.Config{
		Games:    c.Games,
		Size:     cfg.Game.Size,
		Seed:     globals.seed(logger),
		Workers:  workers,
		Strategy: c.Strategy,
		Alphabet: alphabet,
		Logger:   gameLogger,
	})
	if err != nil {
		return err
	}

	printStats(stats)

	if c.Output != "" {
		if err := stats.WriteFile(c.Output); err != nil {
			return err
		}
		logger.Info("Wrote results", "file", c.Output)
	}
	return nil
}

func printStats(stats *simulator.Stats) {
	fmt.Println(tui.HeaderStyle.Render("Simulation Results"))
	fmt.Printf("Strategy:    %s (seed %d)\n", stats.Strategy, stats.Seed)
	fmt.Printf("Board:       %dx%d\n", stats.Size, stats.Size)
	fmt.Printf("Games:       %d in %s\n", stats.Games, stats.Duration.Round(time.Millisecond))
	fmt.Printf("Activations: mean %.2f, min %d, max %d\n",
		stats.Activations.Mean, stats.Activations.Min, stats.Activations.Max)
	fmt.Printf("Mismatches:  mean %.2f, min %d, max %d\n",
		stats.Mismatches.Mean, stats.Mismatches.Min, stats.Mismatches.Max)
}
