// Package config loads the HCL configuration shared by every subcommand.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/concentration/internal/deck"
	"github.com/lox/concentration/internal/game"
)

// Config represents the complete configuration
type Config struct {
	Game   GameSettings
	Notify NotifySettings
	Server ServerSettings
	Log    LogSettings
}

// GameSettings controls the board
type GameSettings struct {
	Size      int    `hcl:"size,optional"`
	Alphabet  string `hcl:"alphabet,optional"`
	Separator string `hcl:"separator,optional"`
	Container string `hcl:"container,optional"`
}

// NotifySettings controls feedback messages
type NotifySettings struct {
	DurationMs int `hcl:"duration_ms,optional"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Addr        string `hcl:"addr,optional"`
	MaxSessions int    `hcl:"max_sessions,optional"`
}

// LogSettings controls logging
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Game: GameSettings{
			Size:      game.DefaultSize,
			Separator: deck.DefaultSeparator,
			Container: game.DefaultContainer,
		},
		Notify: NotifySettings{
			DurationMs: int(game.DefaultNotifyDuration / time.Millisecond),
		},
		Server: ServerSettings{
			Addr:        ":8080",
			MaxSessions: 256,
		},
		Log: LogSettings{
			Level: "info",
			File:  "concentration.log",
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults; settings left out of the file keep their default values.
func Load(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source. filename is only used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	if raw.Game != nil {
		applyGame(&cfg.Game, raw.Game)
	}
	if raw.Notify != nil && raw.Notify.DurationMs != 0 {
		cfg.Notify.DurationMs = raw.Notify.DurationMs
	}
	if raw.Server != nil {
		if raw.Server.Addr != "" {
			cfg.Server.Addr = raw.Server.Addr
		}
		if raw.Server.MaxSessions != 0 {
			cfg.Server.MaxSessions = raw.Server.MaxSessions
		}
	}
	if raw.Log != nil {
		if raw.Log.Level != "" {
			cfg.Log.Level = raw.Log.Level
		}
		if raw.Log.File != "" {
			cfg.Log.File = raw.Log.File
		}
	}

	return cfg, nil
}

// fileConfig mirrors Config with optional blocks so any of them may be
// omitted from the file.
type fileConfig struct {
	Game   *GameSettings   `hcl:"game,block"`
	Notify *NotifySettings `hcl:"notify,block"`
	Server *ServerSettings `hcl:"server,block"`
	Log    *LogSettings    `hcl:"log,block"`
}

func applyGame(dst, src *GameSettings) {
	if src.Size != 0 {
		dst.Size = src.Size
	}
	if src.Alphabet != "" {
		dst.Alphabet = src.Alphabet
	}
	if src.Separator != "" {
		dst.Separator = src.Separator
	}
	if src.Container != "" {
		dst.Container = src.Container
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	count, err := game.TileCount(c.Game.Size)
	if err != nil {
		return err
	}

	alphabet, err := c.Alphabet()
	if err != nil {
		return err
	}
	if pairs := count / 2; pairs > len(alphabet) {
		return fmt.Errorf("%w: size %d needs %d symbols, alphabet has %d",
			game.ErrInsufficientAlphabet, c.Game.Size, pairs, len(alphabet))
	}

	if c.Notify.DurationMs <= 0 {
		return fmt.Errorf("notify duration must be positive")
	}
	if c.Server.MaxSessions < 0 {
		return fmt.Errorf("max sessions cannot be negative")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	return nil
}

// Alphabet returns the configured alphabet, or the built-in one
func (c *Config) Alphabet() (deck.Alphabet, error) {
	if c.Game.Alphabet == "" {
		return deck.DefaultAlphabet(), nil
	}
	alphabet, err := deck.ParseAlphabet(c.Game.Alphabet, c.Game.Separator)
	if err != nil {
		return nil, fmt.Errorf("invalid alphabet: %w", err)
	}
	return alphabet, nil
}

// NotifyDuration returns how long feedback stays visible
func (c *Config) NotifyDuration() time.Duration {
	return time.Duration(c.Notify.DurationMs) * time.Millisecond
}

// LogLevel returns the parsed log level, falling back to info
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
