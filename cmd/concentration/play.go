package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lox/concentration/cmd/concentration/shared"
	"github.com/lox/concentration/internal/tui"
)

// PlayCmd runs a game in process
type PlayCmd struct {
	Size     int    `help:"Board side length (overrides config)"`
	Alphabet string `help:"Symbols to deal from, split on the configured separator (overrides config)"`
	LogFile  string `help:"Log file path (overrides config)"`
}

func (c *PlayCmd) Run(globals *Globals) error {
	cfg, err := globals.loadConfig()
	if err != nil {
		return err
	}
	if c.Size != 0 {
		cfg.Game.Size = c.Size
	}
	if c.Alphabet != "" {
		cfg.Game.Alphabet = c.Alphabet
	}
	if c.LogFile != "" {
		cfg.Log.File = c.LogFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logFile, err := shared.OpenLogFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()

	logger := shared.SetupLogger(logFile, cfg.LogLevel())
	logger.Info("Starting local game", "size", cfg.Game.Size, "config", globals.Config)

	alphabet, err := cfg.Alphabet()
	if err != nil {
		return err
	}

	model, err := tui.New(tui.Options{
		Size:           cfg.Game.Size,
		Alphabet:       alphabet,
		Rand:           globals.rand(logger),
		NotifyDuration: cfg.NotifyDuration(),
		Container:      cfg.Game.Container,
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	return runProgram(model)
}

func runProgram(model *tui.Model) error {
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return model.Err()
}
