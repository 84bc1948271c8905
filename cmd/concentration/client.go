package main

import (
	"context"
	"time"

	"github.com/lox/concentration/cmd/concentration/shared"
	"github.com/lox/concentration/internal/client"
	"github.com/lox/concentration/internal/tui"
)

// ClientCmd plays against a remote server
type ClientCmd struct {
	Server  string `short:"s" default:"ws://localhost:8080/ws" help:"Server URL to connect to"`
	Size    int    `help:"Board side length (0 uses the server default)"`
	LogFile string `help:"Log file path (overrides config)"`
}

func (c *ClientCmd) Run(globals *Globals) error {
	cfg, err := globals.loadConfig()
	if err != nil {
		return err
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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := client.Dial(ctx, c.Server, logger)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	model, err := tui.New(tui.Options{
		Size:   c.Size,
		Remote: conn,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	return runProgram(model)
}
