package character

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Pawel-dev5/character-map-app/pkg/grid"
)

const (
	DefaultName  = "Hero"
	DefaultColor = "#059669"
)

// Character is the avatar the user walks around the map
type Character struct {
	Name       string        `json:"name"`
	Color      string        `json:"color"`                // hex, with leading #
	ColorName  string        `json:"color_name,omitempty"` // resolved by the color lookup
	Position   grid.Position `json:"position"`
	AvatarType AvatarType    `json:"avatar_type"`
}

// New returns a character with default name, color and avatar standing in the
// middle of bounds.
func New(bounds grid.Bounds) Character {
	return Character{
		Name:       DefaultName,
		Color:      DefaultColor,
		Position:   bounds.Center(),
		AvatarType: AvatarBasic,
	}
}

var hexPattern = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// NormalizeHex strips an optional leading # and validates six hex digits.
// The returned digits are lower-cased and carry no #.
func NormalizeHex(hex string) (string, bool) {
	clean := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if !hexPattern.MatchString(clean) {
		return "", false
	}
	return strings.ToLower(clean), true
}

// Initial returns the upper-cased first letter of name, or "?" for an empty name
func Initial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "?"
	}
	r, _ := utf8.DecodeRuneInString(name)
	return cases.Upper(language.Und).String(string(r))
}
