package maptheme

// Type groups themes into the picker categories
type Type string

const (
	TypeTopographic Type = "topographic"
	TypePixel       Type = "pixel"
	TypeAbstract    Type = "abstract"
)

// DefaultThemeID is selected when nothing has been stored yet
const DefaultThemeID = "retro-overworld"

// Theme describes one selectable map background
type Theme struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Type            Type   `json:"type"`
	Description     string `json:"description"`
	BackgroundImage string `json:"background_image,omitempty"`
	GridColor       string `json:"grid_color,omitempty"`
	BorderColor     string `json:"border_color,omitempty"`
}

// Themes is the catalogue in display order. Topographic themes are backed by
// real map tiles and pair with the address search.
var Themes = []Theme{
	{
		ID:              "osm-standard",
		Name:            "OpenStreetMap",
		Type:            TypeTopographic,
		Description:     "Standard OpenStreetMap cartography",
		BackgroundImage: "https://tile.openstreetmap.org/10/512/341.png",
		GridColor:       "rgba(0,0,0,0.1)",
		BorderColor:     "#6b7280",
	},
	{
		ID:              "carto-light",
		Name:            "Carto Light",
		Type:            TypeTopographic,
		Description:     "Muted light basemap",
		BackgroundImage: "https://a.basemaps.cartocdn.com/light_all/10/512/341.png",
		GridColor:       "rgba(0,0,0,0.08)",
		BorderColor:     "#d1d5db",
	},
	{
		ID:              "carto-dark",
		Name:            "Carto Dark",
		Type:            TypeTopographic,
		Description:     "Dark basemap",
		BackgroundImage: "https://a.basemaps.cartocdn.com/dark_all/10/512/341.png",
		GridColor:       "rgba(255,255,255,0.1)",
		BorderColor:     "#4b5563",
	},
	{
		ID:          "retro-overworld",
		Name:        "Retro Overworld",
		Type:        TypePixel,
		Description: "Classic 8-bit overworld",
		GridColor:   "rgba(0,0,0,0.1)",
		BorderColor: "#22c55e",
	},
	{
		ID:          "pixel-forest",
		Name:        "Pixel Forest",
		Type:        TypePixel,
		Description: "Dense pixel-art woodland",
		GridColor:   "rgba(0,0,0,0.1)",
		BorderColor: "#15803d",
	},
	{
		ID:          "pixel-desert",
		Name:        "Pixel Desert",
		Type:        TypePixel,
		Description: "Dunes and oases",
		GridColor:   "rgba(0,0,0,0.05)",
		BorderColor: "#f59e0b",
	},
	{
		ID:          "pixel-ocean",
		Name:        "Pixel Ocean",
		Type:        TypePixel,
		Description: "Islands in open water",
		GridColor:   "rgba(255,255,255,0.1)",
		BorderColor: "#2563eb",
	},
	{
		ID:          "retro-dungeon",
		Name:        "Retro Dungeon",
		Type:        TypePixel,
		Description: "Stone corridors and chambers",
		GridColor:   "rgba(255,255,255,0.1)",
		BorderColor: "#6b7280",
	},
}

// ByID returns the theme with the given id, or the first theme in the catalogue
func ByID(id string) Theme {
	if t, ok := Lookup(id); ok {
		return t
	}
	return Themes[0]
}

// Lookup is ByID without the fallback
func Lookup(id string) (Theme, bool) {
	for _, t := range Themes {
		if t.ID == id {
			return t, true
		}
	}
	return Theme{}, false
}

// ByType returns the themes of type t in catalogue order
func ByType(t Type) []Theme {
	var out []Theme
	for _, theme := range Themes {
		if theme.Type == t {
			out = append(out, theme)
		}
	}
	return out
}
