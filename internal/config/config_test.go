package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/concentration/internal/deck"
	"github.com/lox/concentration/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 4, cfg.Game.Size)
	assert.Equal(t, game.DefaultNotifyDuration, cfg.NotifyDuration())
	assert.Equal(t, log.InfoLevel, cfg.LogLevel())

	alphabet, err := cfg.Alphabet()
	require.NoError(t, err)
	assert.Equal(t, deck.DefaultAlphabet(), alphabet)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "concentration.hcl")
	src := `
game {
  size     = 6
  alphabet = "a,b,c,d,e,f,g,h,i,j,k,l,m,n,o,p,q,r"
  separator = ","
}

notify {
  duration_ms = 800
}

server {
  addr = "127.0.0.1:9000"
}

log {
  level = "debug"
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 6, cfg.Game.Size)
	assert.Equal(t, game.DefaultContainer, cfg.Game.Container)
	assert.Equal(t, 800*time.Millisecond, cfg.NotifyDuration())
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 256, cfg.Server.MaxSessions)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel())
	assert.Equal(t, "concentration.log", cfg.Log.File)

	alphabet, err := cfg.Alphabet()
	require.NoError(t, err)
	assert.Len(t, alphabet, 18)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`game {`), "broken.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")

	_, err = Parse([]byte(`game { size = "big" }`), "typed.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")

	_, err = Parse([]byte(`unknown { }`), "unknown.hcl")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
		errText string
	}{
		{
			name:    "odd board",
			mutate:  func(c *Config) { c.Game.Size = 3 },
			wantErr: game.ErrInvalidBoardSize,
		},
		{
			name:    "zero board",
			mutate:  func(c *Config) { c.Game.Size = 0 },
			wantErr: game.ErrInvalidBoardSize,
		},
		{
			name:    "overflowing board",
			mutate:  func(c *Config) { c.Game.Size = math.MaxInt / 2 },
			wantErr: game.ErrInvalidBoardSize,
		},
		{
			name:    "alphabet too small",
			mutate:  func(c *Config) { c.Game.Alphabet = "a|b|c" },
			wantErr: game.ErrInsufficientAlphabet,
		},
		{
			name:    "duplicate symbol",
			mutate:  func(c *Config) { c.Game.Alphabet = "a|a|b|c|d|e|f|g|h" },
			wantErr: deck.ErrDuplicateSymbol,
		},
		{
			name:    "default alphabet too small for huge board",
			mutate:  func(c *Config) { c.Game.Size = 12 },
			wantErr: game.ErrInsufficientAlphabet,
		},
		{
			name:    "notify duration",
			mutate:  func(c *Config) { c.Notify.DurationMs = 0 },
			errText: "notify duration",
		},
		{
			name:    "log level",
			mutate:  func(c *Config) { c.Log.Level = "loud" },
			errText: "invalid log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.errText != "" {
				assert.Contains(t, err.Error(), tt.errText)
			}
		})
	}
}
