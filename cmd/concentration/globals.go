package main

import (
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/concentration/internal/config"
	"github.com/lox/concentration/internal/randutil"
	"github.com/muesli/termenv"
)

// Globals are flags shared by every command
type Globals struct {
	Config  string           `short:"c" default:"concentration.hcl" help:"Path to HCL configuration file"`
	Debug   bool             `help:"Enable debug logging"`
	Seed    *int64           `help:"Deterministic RNG seed (optional)"`
	NoColor bool             `help:"Disable colored output"`
	Version kong.VersionFlag `short:"v" help:"Show version"`
}

// loadConfig reads the config file and applies global overrides. Commands
// apply their own flags and then validate.
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.Debug {
		cfg.Log.Level = "debug"
	}
	if g.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	return cfg, nil
}

// seed returns the configured seed or one derived from the wall clock
func (g *Globals) seed(logger *log.Logger) int64 {
	if g.Seed != nil {
		logger.Info("Using deterministic seed", "seed", *g.Seed)
		return *g.Seed
	}
	seed := time.Now().UnixNano()
	logger.Info("Using random seed", "seed", seed)
	return seed
}

func (g *Globals) rand(logger *log.Logger) randutil.Source {
	return randutil.New(g.seed(logger))
}
