package main

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pawel-dev5/character-map-app/internal/services"
	"github.com/Pawel-dev5/character-map-app/internal/session"
	"github.com/Pawel-dev5/character-map-app/internal/storage"
	"github.com/Pawel-dev5/character-map-app/internal/suggest"
	"github.com/Pawel-dev5/character-map-app/pkg/character"
	"github.com/Pawel-dev5/character-map-app/pkg/grid"
	"github.com/Pawel-dev5/character-map-app/pkg/lookup"
	"github.com/Pawel-dev5/character-map-app/pkg/maptheme"
)

type testConsole struct {
	ui       ConsoleUI
	session  *session.Session
	colors   *services.MockColorNamer
	geocoder *services.MockGeocoder
	copied   []string
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestConsole(t *testing.T) *testConsole {
	t.Helper()
	ctx := context.Background()
	s := session.New(storage.NewAdapter(storage.NewMemoryStore(), testLogger()), grid.DefaultBounds, testLogger())
	s.Load(ctx)

	tc := &testConsole{
		session:  s,
		colors:   services.NewMockColorNamer(),
		geocoder: services.NewMockGeocoder(),
	}
	tc.colors.FetchColorNameFunc = func(ctx context.Context, hex string) lookup.Result[string] {
		if _, ok := character.NormalizeHex(hex); !ok {
			return lookup.Fail[string](lookup.ErrInvalidInput, lookup.Error{Message: "Invalid color format.", Code: lookup.CodeInvalidFormat})
		}
		return lookup.Ok("Name of " + hex)
	}
	tc.geocoder.SuggestAddressesFunc = func(ctx context.Context, q string) lookup.Result[[]lookup.AddressSuggestion] {
		return lookup.Ok([]lookup.AddressSuggestion{
			{ID: "1", DisplayName: "Warsaw, Masovian Voivodeship, Poland", Coordinates: lookup.Coordinates{Lat: 52.2319581, Lon: 21.0067249}},
			{ID: "2", DisplayName: "Warsaw, Kosciusko County, Indiana, United States", Coordinates: lookup.Coordinates{Lat: 41.2381, Lon: -85.8530}},
		})
	}

	tc.ui = NewConsoleUI(ctx, s, tc.colors, tc.geocoder, UIOptions{
		Debounce:  time.Millisecond,
		BlurGrace: time.Millisecond,
		Logger:    testLogger(),
	})
	tc.ui.copyText = func(text string) error {
		tc.copied = append(tc.copied, text)
		return nil
	}
	tc.drain(t, tc.ui.initCmd)
	return tc
}

// run executes cmd, giving up on commands that wait longer than a short
// deadline such as cursor blinks.
func run(cmd tea.Cmd) tea.Msg {
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		return msg
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

// drain feeds every message produced by cmd back into the model
func (tc *testConsole) drain(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 200, "command loop did not settle")
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := run(next)
		if msg == nil {
			continue
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		model, more := tc.ui.Update(msg)
		tc.ui = model.(ConsoleUI)
		queue = append(queue, more)
	}
}

func (tc *testConsole) press(t *testing.T, msg tea.KeyMsg) {
	t.Helper()
	model, cmd := tc.ui.Update(msg)
	tc.ui = model.(ConsoleUI)
	tc.drain(t, cmd)
}

func (tc *testConsole) typeText(t *testing.T, s string) {
	t.Helper()
	tc.press(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestConsole_ResolvesDefaultColorNameOnStart(t *testing.T) {
	tc := newTestConsole(t)
	assert.Equal(t, []string{character.DefaultColor}, tc.colors.Calls())
	assert.Equal(t, "Name of "+character.DefaultColor, tc.session.Character().ColorName)
}

func TestConsole_ArrowKeysMoveCharacter(t *testing.T) {
	tc := newTestConsole(t)
	tc.press(t, key(tea.KeyUp))
	tc.press(t, key(tea.KeyRight))
	tc.press(t, key(tea.KeyRight))
	assert.Equal(t, grid.Position{X: 12, Y: 6}, tc.session.Character().Position)

	tc.press(t, runes("r"))
	assert.Equal(t, grid.Position{X: 10, Y: 7}, tc.session.Character().Position)
}

func TestConsole_CyclesAvatar(t *testing.T) {
	tc := newTestConsole(t)
	tc.press(t, runes("v"))
	assert.Equal(t, character.AvatarBasic.Next(), tc.session.Character().AvatarType)
}

func TestConsole_NameIsDebounced(t *testing.T) {
	tc := newTestConsole(t)
	tc.press(t, key(tea.KeyTab))
	require.Equal(t, focusName, tc.ui.focus)
	tc.ui.nameInput.SetValue("")

	model, cmd := tc.ui.Update(runes("Ola"))
	tc.ui = model.(ConsoleUI)
	assert.Equal(t, character.DefaultName, tc.session.Character().Name, "saved only after the pause")

	tc.drain(t, cmd)
	assert.Equal(t, "Ola", tc.session.Character().Name)
}

func TestConsole_ArrowKeysDoNotMoveWhileEditing(t *testing.T) {
	tc := newTestConsole(t)
	tc.press(t, key(tea.KeyTab))
	tc.press(t, key(tea.KeyLeft))
	assert.Equal(t, grid.DefaultBounds.Center(), tc.session.Character().Position)
}

func TestConsole_ApplyColor(t *testing.T) {
	tc := newTestConsole(t)
	tc.press(t, key(tea.KeyTab))
	tc.press(t, key(tea.KeyTab))
	require.Equal(t, focusColor, tc.ui.focus)

	tc.ui.colorInput.SetValue("FF8800")
	tc.press(t, key(tea.KeyEnter))

	c := tc.session.Character()
	assert.Equal(t, "#ff8800", c.Color)
	assert.Equal(t, "Name of #ff8800", c.ColorName)
	assert.Equal(t, "#ff8800", tc.ui.colorInput.Value())
}

func TestConsole_InvalidColorShowsError(t *testing.T) {
	tc := newTestConsole(t)
	tc.press(t, key(tea.KeyTab))
	tc.press(t, key(tea.KeyTab))

	tc.ui.colorInput.SetValue("#zz")
	tc.press(t, key(tea.KeyEnter))

	assert.Equal(t, character.DefaultColor, tc.session.Character().Color)
	assert.True(t, tc.ui.colorName.IsInvalidColorError())
	assert.Contains(t, tc.ui.View(), "[invalid]")
}

func TestConsole_ThemeSelection(t *testing.T) {
	tc := newTestConsole(t)
	require.Equal(t, maptheme.TypePixel, tc.ui.category)

	tc.press(t, runes("]"))
	assert.Equal(t, "pixel-forest", tc.session.Theme().ID)
	tc.press(t, runes("["))
	tc.press(t, runes("["))
	assert.Equal(t, "retro-dungeon", tc.session.Theme().ID, "wraps around")

	tc.press(t, runes("t"))
	assert.Equal(t, maptheme.TypeTopographic, tc.ui.category)
	assert.Equal(t, "osm-standard", tc.session.Theme().ID)
}

func TestConsole_AddressSearchOnlyOnTopographicMaps(t *testing.T) {
	tc := newTestConsole(t)
	assert.NotContains(t, tc.ui.focusOrder(), focusAddress)

	tc.press(t, runes("t"))
	assert.Contains(t, tc.ui.focusOrder(), focusAddress)
}

func TestConsole_AddressSuggestionFlow(t *testing.T) {
	tc := newTestConsole(t)
	tc.press(t, runes("t"))
	tc.press(t, key(tea.KeyShiftTab))
	require.Equal(t, focusAddress, tc.ui.focus)

	tc.typeText(t, "Warsaw")
	require.True(t, tc.ui.suggest.Visible())
	assert.Equal(t, []string{"Warsaw"}, tc.geocoder.SuggestCalls())
	assert.Contains(t, tc.ui.View(), "Masovian Voivodeship")

	tc.press(t, key(tea.KeyDown))
	tc.press(t, key(tea.KeyEnter))

	coords := tc.session.Coordinates()
	require.NotNil(t, coords)
	assert.Equal(t, 52.2319581, coords.Latitude)
	assert.Equal(t, "Warsaw, Masovian Voivodeship, Poland", tc.ui.addressInput.Value())
	assert.False(t, tc.ui.suggest.Visible())

	// Esc with the list closed returns to the map, then copy the coordinates
	tc.press(t, key(tea.KeyEsc))
	require.Equal(t, focusMap, tc.ui.focus)
	tc.press(t, runes("y"))
	assert.Equal(t, []string{"52.231958, 21.006725"}, tc.copied)
	assert.Contains(t, tc.ui.status, "Copied")
}

func TestConsole_AddressEnterSearches(t *testing.T) {
	tc := newTestConsole(t)
	tc.geocoder.GeocodeAddressFunc = func(ctx context.Context, q string) lookup.Result[lookup.GeoCoordinates] {
		return lookup.Fail[lookup.GeoCoordinates](lookup.ErrInvalidInput, lookup.Error{Message: "Address not found.", Code: lookup.CodeNotFound})
	}
	tc.press(t, runes("t"))
	tc.press(t, key(tea.KeyShiftTab))
	tc.typeText(t, "Atlantis")

	tc.press(t, key(tea.KeyEnter))
	assert.Equal(t, []string{"Atlantis"}, tc.geocoder.GeocodeCalls())
	assert.Nil(t, tc.session.Coordinates())
	assert.Contains(t, tc.ui.View(), "Address not found.")
}

func TestConsole_SuggestionErrorKeepsInput(t *testing.T) {
	tc := newTestConsole(t)
	tc.geocoder.SuggestAddressesFunc = func(ctx context.Context, q string) lookup.Result[[]lookup.AddressSuggestion] {
		return lookup.Fail[[]lookup.AddressSuggestion](lookup.ErrNetwork, lookup.Error{Message: "Network error. Check your connection.", Code: lookup.CodeNetwork})
	}
	tc.press(t, runes("t"))
	tc.press(t, key(tea.KeyShiftTab))
	tc.typeText(t, "Krakow")

	assert.Equal(t, "Krakow", tc.ui.addressInput.Value())
	assert.False(t, tc.ui.suggest.Visible())
	assert.Contains(t, tc.ui.View(), "Network error")
}

func TestConsole_CopyWithoutCoordinatesIsNoop(t *testing.T) {
	tc := newTestConsole(t)
	tc.press(t, runes("y"))
	assert.Empty(t, tc.copied)
}

func TestConsole_ResetAll(t *testing.T) {
	tc := newTestConsole(t)
	tc.press(t, key(tea.KeyLeft))
	tc.press(t, runes("]"))

	tc.press(t, key(tea.KeyCtrlR))
	assert.Equal(t, grid.DefaultBounds.Center(), tc.session.Character().Position)
	assert.Equal(t, maptheme.DefaultThemeID, tc.session.Theme().ID)
	assert.NotEmpty(t, tc.session.Character().ColorName, "default color name looked up again")
}

func TestConsole_QuitModal(t *testing.T) {
	tc := newTestConsole(t)
	tc.press(t, runes("q"))
	require.True(t, tc.ui.showQuitModal)
	assert.Contains(t, tc.ui.View(), "Quit?")

	tc.press(t, runes("n"))
	assert.False(t, tc.ui.showQuitModal)

	tc.press(t, key(tea.KeyCtrlC))
	model, cmd := tc.ui.Update(runes("y"))
	tc.ui = model.(ConsoleUI)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestRenderGrid_PlacesAvatar(t *testing.T) {
	c := character.New(grid.Bounds{Width: 3, Height: 2})
	c.Name = "zed"
	out := renderGrid(c, grid.Bounds{Width: 3, Height: 2}, maptheme.ByID("pixel-ocean"))
	assert.Contains(t, out, "Z")
}

func TestConsole_QuitModalKeepsPendingWork(t *testing.T) {
	t.Run("suggestions arrive while modal is open", func(t *testing.T) {
		tc := newTestConsole(t)
		tc.press(t, runes("t"))
		tc.press(t, key(tea.KeyShiftTab))

		model, pending := tc.ui.Update(runes("Warsaw"))
		tc.ui = model.(ConsoleUI)
		tc.press(t, key(tea.KeyCtrlC))
		require.True(t, tc.ui.showQuitModal)

		tc.drain(t, pending)
		tc.press(t, key(tea.KeyEsc))

		assert.False(t, tc.ui.showQuitModal)
		assert.Equal(t, suggest.StateReady, tc.ui.suggest.State())
		assert.False(t, tc.ui.suggest.Fetching())
		assert.Len(t, tc.ui.suggest.Suggestions(), 2)
	})

	t.Run("debounced name is saved while modal is open", func(t *testing.T) {
		tc := newTestConsole(t)
		tc.press(t, key(tea.KeyTab))
		tc.ui.nameInput.SetValue("")

		model, pending := tc.ui.Update(runes("X"))
		tc.ui = model.(ConsoleUI)
		tc.press(t, key(tea.KeyCtrlC))

		tc.drain(t, pending)
		assert.Equal(t, "X", tc.session.Character().Name)

		tc.press(t, key(tea.KeyEsc))
		assert.False(t, tc.ui.showQuitModal)
		assert.Equal(t, "X", tc.ui.nameInput.Value())
	})

	t.Run("committed search is stored while modal is open", func(t *testing.T) {
		tc := newTestConsole(t)
		tc.press(t, runes("t"))
		tc.press(t, key(tea.KeyShiftTab))
		tc.typeText(t, "Warsaw")
		tc.press(t, key(tea.KeyDown))

		model, pending := tc.ui.Update(key(tea.KeyEnter))
		tc.ui = model.(ConsoleUI)
		tc.press(t, key(tea.KeyCtrlC))
		tc.drain(t, pending)

		coords := tc.session.Coordinates()
		require.NotNil(t, coords)
		assert.Equal(t, "Warsaw, Masovian Voivodeship, Poland", coords.Address)
	})
}
