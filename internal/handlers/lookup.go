package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/singleflight"

	"github.com/Pawel-dev5/character-map-app/internal/services"
	"github.com/Pawel-dev5/character-map-app/pkg/character"
	"github.com/Pawel-dev5/character-map-app/pkg/lookup"
)

// LookupHandler proxies the color and geocoding lookups. Every response is
// HTTP 200 carrying a lookup.Result; the failure kind travels in the body.
type LookupHandler struct {
	colors   services.ColorNamer
	geocoder services.Geocoder
	logger   *slog.Logger
	inflight singleflight.Group
}

func NewLookupHandler(colors services.ColorNamer, geocoder services.Geocoder, logger *slog.Logger) *LookupHandler {
	return &LookupHandler{
		colors:   colors,
		geocoder: geocoder,
		logger:   logger,
	}
}

// Register adds the lookup endpoints to r
func (h *LookupHandler) Register(r chi.Router) {
	r.Get("/color", h.color)
	r.Get("/geocode", h.geocode)
	r.Get("/suggestions", h.suggestions)
}

// color collapses concurrent lookups for the same color into one upstream call
func (h *LookupHandler) color(w http.ResponseWriter, r *http.Request) {
	hex := r.URL.Query().Get("hex")
	key := strings.ToLower(strings.TrimSpace(hex))
	if norm, ok := character.NormalizeHex(hex); ok {
		key = norm
	}

	// detached so one client going away does not fail the others sharing the call
	ctx := context.WithoutCancel(r.Context())
	v, _, shared := h.inflight.Do(key, func() (any, error) {
		return h.colors.FetchColorName(ctx, hex), nil
	})
	result := v.(lookup.Result[string])

	h.logger.Debug("Color lookup", "hex", hex, "success", result.Success, "shared", shared)
	writeJSON(w, h.logger, http.StatusOK, result)
}

func (h *LookupHandler) geocode(w http.ResponseWriter, r *http.Request) {
	result := h.geocoder.GeocodeAddress(r.Context(), r.URL.Query().Get("q"))
	writeJSON(w, h.logger, http.StatusOK, result)
}

func (h *LookupHandler) suggestions(w http.ResponseWriter, r *http.Request) {
	result := h.geocoder.SuggestAddresses(r.Context(), r.URL.Query().Get("q"))
	if result.Success && result.Data == nil {
		result.Data = []lookup.AddressSuggestion{}
	}
	writeJSON(w, h.logger, http.StatusOK, result)
}
