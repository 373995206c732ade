package lookup

import "strings"

// Coordinates is a WGS84 point
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// GeoCoordinates is a resolved address, as emitted to the map panel
type GeoCoordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

// AddressSuggestion is one autocomplete entry. Lists keep the server ranking.
type AddressSuggestion struct {
	ID          string      `json:"id"`
	DisplayName string      `json:"displayName"`
	Coordinates Coordinates `json:"coordinates"`
}

// PrimaryName is the part of DisplayName before the first comma
func (s AddressSuggestion) PrimaryName() string {
	name, _, _ := strings.Cut(s.DisplayName, ",")
	return strings.TrimSpace(name)
}

// Details is the remainder of DisplayName after the first comma
func (s AddressSuggestion) Details() string {
	_, rest, _ := strings.Cut(s.DisplayName, ",")
	return strings.TrimSpace(rest)
}

// GeoCoordinates converts the suggestion into the value emitted on selection
func (s AddressSuggestion) GeoCoordinates() GeoCoordinates {
	return GeoCoordinates{
		Latitude:  s.Coordinates.Lat,
		Longitude: s.Coordinates.Lon,
		Address:   s.DisplayName,
	}
}
