package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Pawel-dev5/character-map-app/internal/storage"
	"github.com/Pawel-dev5/character-map-app/pkg/character"
	"github.com/Pawel-dev5/character-map-app/pkg/grid"
	"github.com/Pawel-dev5/character-map-app/pkg/lookup"
	"github.com/Pawel-dev5/character-map-app/pkg/maptheme"
)

// Session owns the character, the selected map theme and the last geocoded
// place for one user. Every mutation is persisted field by field; persistence
// failures are logged by the storage adapter and never surface here.
//
// A Session is safe for concurrent use. The change callbacks run after the
// lock is released.
type Session struct {
	mu        sync.RWMutex
	character character.Character
	bounds    grid.Bounds
	themeID   string
	coords    *lookup.GeoCoordinates

	adapter *storage.Adapter
	chars   storage.CharacterStorage
	maps    storage.MapStorage
	logger  *slog.Logger

	// OnThemeChange is called with the newly selected theme
	OnThemeChange func(maptheme.Theme)
	// OnCoordinatesChange is called with the new place, or nil when cleared
	OnCoordinatesChange func(*lookup.GeoCoordinates)
}

// New creates a session with default state. Call Load to restore saved state.
func New(adapter *storage.Adapter, bounds grid.Bounds, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	if bounds.Width <= 0 || bounds.Height <= 0 {
		bounds = grid.DefaultBounds
	}
	return &Session{
		character: character.New(bounds),
		bounds:    bounds,
		themeID:   maptheme.DefaultThemeID,
		adapter:   adapter,
		chars:     storage.NewCharacterStorage(adapter),
		maps:      storage.NewMapStorage(adapter),
		logger:    logger,
	}
}

// Load restores every field from storage, falling back to defaults.
func (s *Session) Load(ctx context.Context) {
	def := character.New(s.bounds)

	c := character.Character{
		Name:       s.chars.Name(ctx, def.Name),
		Color:      s.chars.Color(ctx, def.Color),
		ColorName:  s.chars.ColorName(ctx),
		AvatarType: s.chars.AvatarType(ctx, def.AvatarType),
		Position:   s.bounds.Clamp(s.chars.Position(ctx, def.Position)),
	}
	if hex, ok := character.NormalizeHex(c.Color); ok {
		c.Color = "#" + hex
	} else {
		s.logger.Warn("Ignoring stored color", "color", c.Color)
		c.Color = def.Color
		c.ColorName = ""
	}

	themeID := maptheme.ByID(s.maps.ThemeID(ctx, maptheme.DefaultThemeID)).ID
	coords := s.maps.Coordinates(ctx)

	s.mu.Lock()
	s.character = c
	s.themeID = themeID
	s.coords = coords
	s.mu.Unlock()

	s.logger.Debug("Session loaded", "name", c.Name, "theme_id", themeID, "position", c.Position)
}

// Character returns a copy of the current character
func (s *Session) Character() character.Character {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.character
}

func (s *Session) Bounds() grid.Bounds {
	return s.bounds
}

// Theme returns the selected map theme
func (s *Session) Theme() maptheme.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maptheme.ByID(s.themeID)
}

// Coordinates returns the last geocoded place, or nil
func (s *Session) Coordinates() *lookup.GeoCoordinates {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.coords == nil {
		return nil
	}
	c := *s.coords
	return &c
}

// NeedsColorName reports whether the current color has no resolved name yet
func (s *Session) NeedsColorName() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.character.ColorName == ""
}

func (s *Session) SetName(ctx context.Context, name string) character.Character {
	s.mu.Lock()
	s.character.Name = name
	c := s.character
	s.mu.Unlock()

	s.chars.SetName(ctx, name)
	return c
}

// SetColor accepts a hex color with or without # and stores it with one. The
// previous color name is cleared since it no longer describes the color.
func (s *Session) SetColor(ctx context.Context, color string) (character.Character, error) {
	hex, ok := character.NormalizeHex(color)
	if !ok {
		return s.Character(), fmt.Errorf("invalid hex color %q", color)
	}
	color = "#" + hex

	s.mu.Lock()
	changed := s.character.Color != color
	s.character.Color = color
	if changed {
		s.character.ColorName = ""
	}
	c := s.character
	s.mu.Unlock()

	s.chars.SetColor(ctx, color)
	if changed {
		s.chars.SetColorName(ctx, "")
	}
	return c, nil
}

// SetColorName records a resolved name. It is ignored when hex no longer
// matches the current color, so a late lookup cannot mislabel a newer color.
func (s *Session) SetColorName(ctx context.Context, hex, name string) bool {
	want, ok := character.NormalizeHex(hex)
	if !ok {
		return false
	}

	s.mu.Lock()
	current, _ := character.NormalizeHex(s.character.Color)
	if current != want {
		s.mu.Unlock()
		return false
	}
	s.character.ColorName = name
	s.mu.Unlock()

	s.chars.SetColorName(ctx, name)
	return true
}

func (s *Session) SetAvatarType(ctx context.Context, t character.AvatarType) character.Character {
	t = character.ParseAvatarType(string(t))

	s.mu.Lock()
	s.character.AvatarType = t
	c := s.character
	s.mu.Unlock()

	s.chars.SetAvatarType(ctx, t)
	return c
}

// Move steps the character one cell, clamped to the grid
func (s *Session) Move(ctx context.Context, d grid.Direction) grid.Position {
	s.mu.Lock()
	p := grid.Move(s.character.Position, d, s.bounds)
	moved := p != s.character.Position
	s.character.Position = p
	s.mu.Unlock()

	if moved {
		s.chars.SetPosition(ctx, p)
	}
	return p
}

// ResetPosition puts the character back in the middle of the grid
func (s *Session) ResetPosition(ctx context.Context) grid.Position {
	p := s.bounds.Center()

	s.mu.Lock()
	s.character.Position = p
	s.mu.Unlock()

	s.chars.SetPosition(ctx, p)
	return p
}

// SetTheme selects a theme by id. Unknown ids are rejected.
func (s *Session) SetTheme(ctx context.Context, id string) (maptheme.Theme, error) {
	theme, ok := maptheme.Lookup(id)
	if !ok {
		return s.Theme(), fmt.Errorf("unknown map theme %q", id)
	}

	s.mu.Lock()
	s.themeID = theme.ID
	cb := s.OnThemeChange
	s.mu.Unlock()

	s.maps.SetThemeID(ctx, theme.ID)
	if cb != nil {
		cb(theme)
	}
	return theme, nil
}

// SetCoordinates records the last geocoded place; nil clears it
func (s *Session) SetCoordinates(ctx context.Context, coords *lookup.GeoCoordinates) {
	var stored *lookup.GeoCoordinates
	if coords != nil {
		c := *coords
		stored = &c
	}

	s.mu.Lock()
	s.coords = stored
	cb := s.OnCoordinatesChange
	s.mu.Unlock()

	s.maps.SetCoordinates(ctx, stored)
	if cb != nil {
		cb(coords)
	}
}

// Reset clears everything this application stored and restores defaults
func (s *Session) Reset(ctx context.Context) {
	s.adapter.ClearAll(ctx)

	s.mu.Lock()
	s.character = character.New(s.bounds)
	s.themeID = maptheme.DefaultThemeID
	s.coords = nil
	s.mu.Unlock()

	s.logger.Info("Session reset")
}
