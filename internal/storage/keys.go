package storage

import (
	"context"

	"github.com/Pawel-dev5/character-map-app/pkg/character"
	"github.com/Pawel-dev5/character-map-app/pkg/grid"
	"github.com/Pawel-dev5/character-map-app/pkg/lookup"
)

const keyPrefix = "characterMapApp_"

// Persisted keys, one per field
const (
	KeyCharacterColor      = keyPrefix + "characterColor"
	KeyCharacterColorName  = keyPrefix + "characterColorName"
	KeyCharacterName       = keyPrefix + "characterName"
	KeyCharacterAvatarType = keyPrefix + "characterAvatarType"
	KeyCharacterPosition   = keyPrefix + "characterPosition"
	KeyMapThemeID          = keyPrefix + "mapThemeId"
	KeyMapCoordinates      = keyPrefix + "mapCoordinates"
)

// AllKeys lists every key the application writes
var AllKeys = []string{
	KeyCharacterColor,
	KeyCharacterColorName,
	KeyCharacterName,
	KeyCharacterAvatarType,
	KeyCharacterPosition,
	KeyMapThemeID,
	KeyMapCoordinates,
}

// CharacterStorage persists the character field by field
type CharacterStorage struct {
	a *Adapter
}

func NewCharacterStorage(a *Adapter) CharacterStorage {
	return CharacterStorage{a: a}
}

func (c CharacterStorage) Name(ctx context.Context, def string) string {
	return Get(ctx, c.a, KeyCharacterName, def)
}

func (c CharacterStorage) SetName(ctx context.Context, name string) {
	Set(ctx, c.a, KeyCharacterName, name)
}

func (c CharacterStorage) Color(ctx context.Context, def string) string {
	return Get(ctx, c.a, KeyCharacterColor, def)
}

func (c CharacterStorage) SetColor(ctx context.Context, color string) {
	Set(ctx, c.a, KeyCharacterColor, color)
}

// ColorName returns "" when no name has been resolved yet
func (c CharacterStorage) ColorName(ctx context.Context) string {
	return Get(ctx, c.a, KeyCharacterColorName, "")
}

func (c CharacterStorage) SetColorName(ctx context.Context, name string) {
	Set(ctx, c.a, KeyCharacterColorName, name)
}

func (c CharacterStorage) AvatarType(ctx context.Context, def character.AvatarType) character.AvatarType {
	return Get(ctx, c.a, KeyCharacterAvatarType, def)
}

func (c CharacterStorage) SetAvatarType(ctx context.Context, t character.AvatarType) {
	Set(ctx, c.a, KeyCharacterAvatarType, t)
}

func (c CharacterStorage) Position(ctx context.Context, def grid.Position) grid.Position {
	return Get(ctx, c.a, KeyCharacterPosition, def)
}

func (c CharacterStorage) SetPosition(ctx context.Context, p grid.Position) {
	Set(ctx, c.a, KeyCharacterPosition, p)
}

// MapStorage persists the selected theme and the last geocoded place
type MapStorage struct {
	a *Adapter
}

func NewMapStorage(a *Adapter) MapStorage {
	return MapStorage{a: a}
}

func (m MapStorage) ThemeID(ctx context.Context, def string) string {
	return Get(ctx, m.a, KeyMapThemeID, def)
}

func (m MapStorage) SetThemeID(ctx context.Context, id string) {
	Set(ctx, m.a, KeyMapThemeID, id)
}

// Coordinates returns nil when nothing was stored or the last search was cleared
func (m MapStorage) Coordinates(ctx context.Context) *lookup.GeoCoordinates {
	return Get[*lookup.GeoCoordinates](ctx, m.a, KeyMapCoordinates, nil)
}

func (m MapStorage) SetCoordinates(ctx context.Context, coords *lookup.GeoCoordinates) {
	Set(ctx, m.a, KeyMapCoordinates, coords)
}
