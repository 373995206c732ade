package character

import (
	"encoding/json"
	"strings"
)

// AvatarType selects how the character is drawn
type AvatarType string

const (
	AvatarBasic    AvatarType = "basic"
	AvatarEightbit AvatarType = "8bit"
	AvatarSanta    AvatarType = "santa"
	AvatarCar      AvatarType = "car"
)

// AvatarTypes lists every avatar in picker order
var AvatarTypes = []AvatarType{AvatarBasic, AvatarEightbit, AvatarSanta, AvatarCar}

// Avatar is the drawing capability for one AvatarType
type Avatar struct {
	Type  AvatarType
	Label string
	glyph string // empty means "use the name's initial"
}

// GlyphFor returns the single-cell symbol drawn on the map for a character named name
func (a Avatar) GlyphFor(name string) string {
	if a.glyph == "" {
		return Initial(name)
	}
	return a.glyph
}

var avatars = map[AvatarType]Avatar{
	AvatarBasic:    {Type: AvatarBasic, Label: "Basic"},
	AvatarEightbit: {Type: AvatarEightbit, Label: "8-bit", glyph: "@"},
	AvatarSanta:    {Type: AvatarSanta, Label: "Santa", glyph: "*"},
	AvatarCar:      {Type: AvatarCar, Label: "Car", glyph: "&"},
}

// AvatarFor resolves t to its Avatar. Unknown types resolve to the basic avatar.
func AvatarFor(t AvatarType) Avatar {
	if a, ok := avatars[t]; ok {
		return a
	}
	return avatars[AvatarBasic]
}

// ParseAvatarType maps a stored or user-supplied tag to an AvatarType,
// falling back to AvatarBasic.
func ParseAvatarType(s string) AvatarType {
	if t, ok := LookupAvatarType(s); ok {
		return t
	}
	return AvatarBasic
}

// LookupAvatarType is ParseAvatarType without the fallback. Matching ignores
// case and surrounding space.
func LookupAvatarType(s string) (AvatarType, bool) {
	t := AvatarType(strings.ToLower(strings.TrimSpace(s)))
	_, ok := avatars[t]
	return t, ok
}

// Next cycles to the following avatar in picker order
func (t AvatarType) Next() AvatarType {
	for i, at := range AvatarTypes {
		if at == t {
			return AvatarTypes[(i+1)%len(AvatarTypes)]
		}
	}
	return AvatarBasic
}

func (t *AvatarType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = ParseAvatarType(s)
	return nil
}
