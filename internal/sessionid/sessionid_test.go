package sessionid

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/concentration/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	id := New(nil, nil).Generate()
	assert.Len(t, id, Length)
	assert.NoError(t, Validate(id))
}

func TestGenerateUnique(t *testing.T) {
	gen := New(nil, nil)
	ids := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := gen.Generate()
		require.False(t, ids[id], "duplicate ID generated: %s", id)
		ids[id] = true
	}
}

func TestDeterministic(t *testing.T) {
	mClock := quartz.NewMock(t)

	a := New(mClock, randutil.New(7)).Generate()
	b := New(mClock, randutil.New(7)).Generate()
	assert.Equal(t, a, b)
	assert.NoError(t, Validate(a))

	c := New(mClock, randutil.New(8)).Generate()
	assert.NotEqual(t, a, c)
}

func TestTimeSorted(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mClock := quartz.NewMock(t)
	gen := New(mClock, randutil.New(1))

	var ids []string
	for i := 0; i < 10; i++ {
		ids = append(ids, gen.Generate())
		mClock.Advance(time.Millisecond).MustWait(ctx)
	}

	for i := 1; i < len(ids); i++ {
		assert.Negative(t, strings.Compare(ids[i-1], ids[i]), "IDs not sorted: %s >= %s", ids[i-1], ids[i])
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid ID", "01h5n0et5q6mt3v7ms1234abcd", false},
		{"too short", "01h5n0et5q6mt3v7ms123", true},
		{"too long", "01h5n0et5q6mt3v7ms1234abcdef", true},
		{"invalid character", "01h5n0et5q6mt3v7ms1234abci", true},
		{"uppercase not allowed", "01H5N0ET5Q6MT3V7MS1234ABCD", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
