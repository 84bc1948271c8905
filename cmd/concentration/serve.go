package main

import (
	"os"

	"github.com/lox/concentration/cmd/concentration/shared"
	"github.com/lox/concentration/internal/server"
)

// ServeCmd runs the WebSocket server
type ServeCmd struct {
	Addr        string `help:"Server address (overrides config)"`
	MaxSessions int    `help:"Maximum concurrent sessions (overrides config)"`
	Size        int    `help:"Default board side length (overrides config)"`
}

func (c *ServeCmd) Run(globals *Globals) error {
	cfg, err := globals.loadConfig()
	if err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.Server.Addr = c.Addr
	}
	if c.MaxSessions != 0 {
		cfg.Server.MaxSessions = c.MaxSessions
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

	scfg := server.Config{
		Size:           cfg.Game.Size,
		Alphabet:       alphabet,
		NotifyDuration: cfg.NotifyDuration(),
		Container:      cfg.Game.Container,
		MaxSessions:    cfg.Server.MaxSessions,
		Seed:           globals.Seed,
	}
	if scfg.Seed != nil {
		logger.Info("Using deterministic seed", "seed", *scfg.Seed)
	}

	s := server.New(logger, server.WithConfig(scfg))

	logger.Info("Starting concentration server",
		"addr", cfg.Server.Addr,
		"size", scfg.Size,
		"symbols", len(alphabet),
		"notify_duration", scfg.NotifyDuration,
		"max_sessions", scfg.MaxSessions)

	ctx := shared.SetupSignalHandler(logger)
	return s.Run(ctx, cfg.Server.Addr)
}
