package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Pawel-dev5/character-map-app/pkg/lookup"
)

const (
	DefaultGeocodingAPIURL = "https://nominatim.openstreetmap.org"

	MinQueryLength  = 3
	SuggestionLimit = 5
)

// nominatimPlace is the subset of a Nominatim search hit we read
type nominatimPlace struct {
	PlaceID     json.Number `json:"place_id"`
	Lat         string      `json:"lat"`
	Lon         string      `json:"lon"`
	DisplayName string      `json:"display_name"`
}

func (p nominatimPlace) coordinates() (lookup.Coordinates, bool) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return lookup.Coordinates{}, false
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return lookup.Coordinates{}, false
	}
	return lookup.Coordinates{Lat: lat, Lon: lon}, true
}

// GeocodingService implements Geocoder against a Nominatim search endpoint
type GeocodingService struct {
	httpLookup
}

// Ensure GeocodingService implements Geocoder
var _ Geocoder = (*GeocodingService)(nil)

// NewGeocodingService creates a geocoding client. An empty BaseURL uses the public
// OpenStreetMap instance, whose usage policy requires a descriptive User-Agent.
func NewGeocodingService(opts LookupOptions) *GeocodingService {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultGeocodingAPIURL
	}
	return &GeocodingService{httpLookup: newHTTPLookup(opts)}
}

// GeocodeAddress resolves query to the best matching place
func (g *GeocodingService) GeocodeAddress(ctx context.Context, query string) lookup.Result[lookup.GeoCoordinates] {
	places, f := g.search(ctx, query, 1)
	if f != nil {
		return failed[lookup.GeoCoordinates](f)
	}
	if len(places) == 0 {
		return lookup.Fail[lookup.GeoCoordinates](lookup.ErrInvalidInput, lookup.Error{
			Message: g.text.Text(lookup.MsgAddressNotFound),
			Code:    lookup.CodeNotFound,
		})
	}

	coords, ok := places[0].coordinates()
	if !ok {
		g.logger.Warn("Geocoding hit has unparsable coordinates", "lat", places[0].Lat, "lon", places[0].Lon)
		return failed[lookup.GeoCoordinates](g.invalidResponse())
	}
	return lookup.Ok(lookup.GeoCoordinates{
		Latitude:  coords.Lat,
		Longitude: coords.Lon,
		Address:   places[0].DisplayName,
	})
}

// SuggestAddresses returns up to SuggestionLimit places for autocomplete, in the
// order the server ranked them. An empty list is a successful answer.
func (g *GeocodingService) SuggestAddresses(ctx context.Context, query string) lookup.Result[[]lookup.AddressSuggestion] {
	places, f := g.search(ctx, query, SuggestionLimit)
	if f != nil {
		return failed[[]lookup.AddressSuggestion](f)
	}

	suggestions := make([]lookup.AddressSuggestion, 0, len(places))
	for _, p := range places {
		coords, ok := p.coordinates()
		if !ok {
			g.logger.Debug("Skipping suggestion with unparsable coordinates", "place_id", p.PlaceID.String())
			continue
		}
		suggestions = append(suggestions, lookup.AddressSuggestion{
			ID:          p.PlaceID.String(),
			DisplayName: p.DisplayName,
			Coordinates: coords,
		})
	}
	return lookup.Ok(suggestions)
}

func (g *GeocodingService) search(ctx context.Context, query string, limit int) ([]nominatimPlace, *failure) {
	q := strings.TrimSpace(query)
	if utf8.RuneCountInString(q) < MinQueryLength {
		return nil, &failure{
			kind: lookup.ErrInvalidInput,
			err:  lookup.Error{Message: g.text.Text(lookup.MsgInvalidAddress), Code: lookup.CodeQueryTooShort},
		}
	}

	params := url.Values{
		"format":         {"json"},
		"q":              {q},
		"limit":          {strconv.Itoa(limit)},
		"addressdetails": {"1"},
	}
	body, f := g.get(ctx, "/search", params, lookup.MsgAddressNotFound)
	if f != nil {
		if f.err.Status == http.StatusNotFound {
			f.err.Code = lookup.CodeNotFound
		}
		return nil, f
	}

	var places []nominatimPlace
	if err := json.Unmarshal(body, &places); err != nil {
		g.logger.Warn("Failed to parse geocoding response", "error", err)
		return nil, g.invalidResponse()
	}
	return places, nil
}
