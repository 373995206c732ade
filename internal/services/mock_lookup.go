package services

import (
	"context"
	"sync"

	"github.com/Pawel-dev5/character-map-app/pkg/lookup"
)

// MockColorNamer is a mock implementation of ColorNamer for testing
type MockColorNamer struct {
	FetchColorNameFunc func(ctx context.Context, hexColor string) lookup.Result[string]

	// Track calls for testing
	FetchColorNameCalls []string

	mu sync.Mutex // protects the call slices
}

// Ensure MockColorNamer implements ColorNamer
var _ ColorNamer = (*MockColorNamer)(nil)

func NewMockColorNamer() *MockColorNamer {
	return &MockColorNamer{
		FetchColorNameCalls: make([]string, 0),
	}
}

func (m *MockColorNamer) FetchColorName(ctx context.Context, hexColor string) lookup.Result[string] {
	m.mu.Lock()
	m.FetchColorNameCalls = append(m.FetchColorNameCalls, hexColor)
	m.mu.Unlock()

	if m.FetchColorNameFunc != nil {
		return m.FetchColorNameFunc(ctx, hexColor)
	}
	return lookup.Ok("Mock Color")
}

// Calls returns a copy of the recorded hex arguments
func (m *MockColorNamer) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.FetchColorNameCalls...)
}

// MockGeocoder is a mock implementation of Geocoder for testing
type MockGeocoder struct {
	GeocodeAddressFunc   func(ctx context.Context, query string) lookup.Result[lookup.GeoCoordinates]
	SuggestAddressesFunc func(ctx context.Context, query string) lookup.Result[[]lookup.AddressSuggestion]

	// Track calls for testing
	GeocodeAddressCalls   []string
	SuggestAddressesCalls []string

	mu sync.Mutex // protects the call slices
}

// Ensure MockGeocoder implements Geocoder
var _ Geocoder = (*MockGeocoder)(nil)

func NewMockGeocoder() *MockGeocoder {
	return &MockGeocoder{
		GeocodeAddressCalls:   make([]string, 0),
		SuggestAddressesCalls: make([]string, 0),
	}
}

func (m *MockGeocoder) GeocodeAddress(ctx context.Context, query string) lookup.Result[lookup.GeoCoordinates] {
	m.mu.Lock()
	m.GeocodeAddressCalls = append(m.GeocodeAddressCalls, query)
	m.mu.Unlock()

	if m.GeocodeAddressFunc != nil {
		return m.GeocodeAddressFunc(ctx, query)
	}
	return lookup.Ok(lookup.GeoCoordinates{Latitude: 52.2297, Longitude: 21.0122, Address: query})
}

func (m *MockGeocoder) SuggestAddresses(ctx context.Context, query string) lookup.Result[[]lookup.AddressSuggestion] {
	m.mu.Lock()
	m.SuggestAddressesCalls = append(m.SuggestAddressesCalls, query)
	m.mu.Unlock()

	if m.SuggestAddressesFunc != nil {
		return m.SuggestAddressesFunc(ctx, query)
	}
	return lookup.Ok([]lookup.AddressSuggestion{})
}

// SuggestCalls returns a copy of the recorded suggestion queries
func (m *MockGeocoder) SuggestCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.SuggestAddressesCalls...)
}

// GeocodeCalls returns a copy of the recorded geocode queries
func (m *MockGeocoder) GeocodeCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.GeocodeAddressCalls...)
}
