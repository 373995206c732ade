package colorname

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pawel-dev5/character-map-app/internal/services"
	"github.com/Pawel-dev5/character-map-app/pkg/lookup"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestTracker_Resolves(t *testing.T) {
	namer := services.NewMockColorNamer()
	namer.FetchColorNameFunc = func(ctx context.Context, hex string) lookup.Result[string] {
		return lookup.Ok("Emerald")
	}
	tr := New(namer, testLogger())

	fetch := tr.Fetch("059669")
	assert.True(t, tr.Loading())

	tr, cmd := tr.Update(fetch())
	require.NotNil(t, cmd)
	assert.False(t, tr.Loading())
	assert.Equal(t, "Emerald", tr.Name())
	assert.Equal(t, ResolvedMsg{Hex: "059669", Name: "Emerald"}, cmd())
}

func TestTracker_LatestRequestWins(t *testing.T) {
	namer := services.NewMockColorNamer()
	namer.FetchColorNameFunc = func(ctx context.Context, hex string) lookup.Result[string] {
		return lookup.Ok("name-" + hex)
	}
	tr := New(namer, testLogger())

	first := tr.Fetch("ff0000")
	second := tr.Fetch("00ff00")

	tr, cmd := tr.Update(second())
	require.NotNil(t, cmd)
	tr, cmd = tr.Update(first())
	assert.Nil(t, cmd)
	assert.Equal(t, "name-00ff00", tr.Name())
	assert.Equal(t, "00ff00", tr.Hex())
}

func TestTracker_ErrorFlags(t *testing.T) {
	tests := []struct {
		kind                      lookup.ErrorKind
		network, timeout, invalid bool
	}{
		{kind: lookup.ErrNetwork, network: true},
		{kind: lookup.ErrTimeout, timeout: true},
		{kind: lookup.ErrInvalidInput, invalid: true},
		{kind: lookup.ErrRemote},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			namer := services.NewMockColorNamer()
			namer.FetchColorNameFunc = func(ctx context.Context, hex string) lookup.Result[string] {
				return lookup.Fail[string](tt.kind, lookup.Error{Message: "failed"})
			}
			tr := New(namer, testLogger())
			fetch := tr.Fetch("abc")
			tr, cmd := tr.Update(fetch())
			assert.Nil(t, cmd)
			require.NotNil(t, tr.Err())
			assert.Equal(t, tt.kind, tr.Kind())
			assert.Equal(t, tt.network, tr.IsNetworkError())
			assert.Equal(t, tt.timeout, tr.IsTimeoutError())
			assert.Equal(t, tt.invalid, tr.IsInvalidColorError())

			tr.ClearError()
			assert.Nil(t, tr.Err())
			assert.False(t, tr.IsNetworkError() || tr.IsTimeoutError() || tr.IsInvalidColorError())
		})
	}
}

func TestTracker_FetchClearsPreviousError(t *testing.T) {
	namer := services.NewMockColorNamer()
	namer.FetchColorNameFunc = func(ctx context.Context, hex string) lookup.Result[string] {
		return lookup.Fail[string](lookup.ErrTimeout, lookup.Error{Message: "timeout"})
	}
	tr := New(namer, testLogger())
	fetch := tr.Fetch("abc")
	tr, _ = tr.Update(fetch())
	require.NotNil(t, tr.Err())

	tr.Fetch("abd")
	assert.Nil(t, tr.Err())
	assert.True(t, tr.Loading())
}
