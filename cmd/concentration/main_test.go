package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"})
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, ctx
}

func TestParseCommands(t *testing.T) {
	t.Run("play is the default", func(t *testing.T) {
		_, ctx := parse(t)
		assert.Equal(t, "play", ctx.Command())
	})

	t.Run("serve flags", func(t *testing.T) {
		cli, ctx := parse(t, "--seed", "7", "serve", "--addr", ":9000", "--max-sessions", "3")
		assert.Equal(t, "serve", ctx.Command())
		assert.Equal(t, ":9000", cli.Serve.Addr)
		assert.Equal(t, 3, cli.Serve.MaxSessions)
		require.NotNil(t, cli.Seed)
		assert.EqualValues(t, 7, *cli.Seed)
	})

	t.Run("simulate defaults", func(t *testing.T) {
		cli, ctx := parse(t, "simulate")
		assert.Equal(t, "simulate", ctx.Command())
		assert.Equal(t, 1000, cli.Simulate.Games)
		assert.Equal(t, "memory", cli.Simulate.Strategy)
		assert.Nil(t, cli.Seed)
	})

	t.Run("unknown strategy", func(t *testing.T) {
		var cli CLI
		parser, err := kong.New(&cli, kong.Vars{"version": "test"})
		require.NoError(t, err)
		_, err = parser.Parse([]string{"simulate", "--strategy", "psychic"})
		assert.Error(t, err)
	})
}

func TestGlobalsConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "concentration.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
game {
  size = 2
}
`), 0o644))

	g := &Globals{Config: path, Debug: true}
	cfg, err := g.loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Game.Size)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestGlobalsSeed(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)

	seed := int64(42)
	g := &Globals{Seed: &seed}
	assert.EqualValues(t, 42, g.seed(logger))
	assert.Contains(t, buf.String(), "deterministic")

	a := g.rand(logger)
	b := (&Globals{Seed: &seed}).rand(logger)
	for range 10 {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}
