package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTileStateString(t *testing.T) {
	assert.Equal(t, "hidden", Hidden.String())
	assert.Equal(t, "revealed", Revealed.String())
	assert.Equal(t, "matched", Matched.String())
	assert.Equal(t, "mismatched", Mismatched.String())
	assert.Equal(t, "TileState(9)", TileState(9).String())
}

func TestTileAssign(t *testing.T) {
	r := &fakeRenderer{}
	b, err := NewBoard(BoardOptions{Size: 2, Renderer: r, Logger: quietLogger()})
	require.NoError(t, err)

	tile := b.tiles[1]
	require.NoError(t, tile.Assign("🍕"))
	assert.EqualValues(t, "🍕", tile.Symbol())
	assert.EqualValues(t, "🍕", r.Symbol(tile.Cell()))

	err = tile.Assign("🍓")
	require.ErrorIs(t, err, ErrSymbolAssigned)
	assert.EqualValues(t, "🍕", tile.Symbol())
}

func TestTileActivate(t *testing.T) {
	t.Run("hidden becomes revealed", func(t *testing.T) {
		b, r, _ := newDealtBoard(t, 2, "A", "B", "A", "B")

		require.NoError(t, b.tiles[0].Activate())
		assert.Equal(t, Revealed, b.tiles[0].State())
		assert.True(t, r.HasFlag(0, FlagSelected))
	})

	t.Run("second activation before resolution is a no-op", func(t *testing.T) {
		b, _, n := newDealtBoard(t, 2, "A", "B", "A", "B")

		require.NoError(t, b.tiles[0].Activate())
		require.NoError(t, b.tiles[0].Activate())
		assert.Equal(t, Revealed, b.tiles[0].State())
		assert.Len(t, b.Pending(), 1)
		assert.Empty(t, n.shown)
	})

	t.Run("mismatched tile ignores activation", func(t *testing.T) {
		b, _, n := newDealtBoard(t, 2, "A", "B", "A", "B")

		require.NoError(t, b.tiles[0].Activate())
		require.NoError(t, b.tiles[1].Activate())
		require.NoError(t, b.tiles[1].Activate())
		assert.Equal(t, []TileState{Mismatched, Mismatched, Hidden, Hidden}, states(b))
		assert.Len(t, n.shown, 1)
	})

	t.Run("undealt tile ignores activation", func(t *testing.T) {
		b, err := NewBoard(BoardOptions{Size: 2, Renderer: &fakeRenderer{}, Logger: quietLogger()})
		require.NoError(t, err)

		require.NoError(t, b.tiles[0].Activate())
		assert.Equal(t, Hidden, b.tiles[0].State())
	})
}

func TestTileClear(t *testing.T) {
	b, r, _ := newDealtBoard(t, 2, "A", "B", "A", "B")

	tests := []struct {
		name     string
		state    TileState
		expected TileState
	}{
		{"hidden stays hidden", Hidden, Hidden},
		{"revealed is untouched", Revealed, Revealed},
		{"matched is untouched", Matched, Matched},
		{"mismatched is hidden", Mismatched, Hidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tile := b.tiles[0]
			tile.setState(Hidden)
			tile.setState(tt.state)

			tile.clear()
			assert.Equal(t, tt.expected, tile.State())
		})
	}

	t.Run("clearing removes every flag", func(t *testing.T) {
		tile := b.tiles[2]
		tile.setState(Revealed)
		tile.setState(Mismatched)
		tile.clear()

		for _, f := range []Flag{FlagSelected, FlagMatched, FlagFailed} {
			assert.False(t, r.HasFlag(tile.Cell(), f), "flag %s", f)
		}
	})
}
