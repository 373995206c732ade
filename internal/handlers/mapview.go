package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Pawel-dev5/character-map-app/internal/session"
	"github.com/Pawel-dev5/character-map-app/pkg/grid"
	"github.com/Pawel-dev5/character-map-app/pkg/lookup"
	"github.com/Pawel-dev5/character-map-app/pkg/maptheme"
)

type MapResponse struct {
	Theme       maptheme.Theme         `json:"theme"`
	Bounds      grid.Bounds            `json:"bounds"`
	Coordinates *lookup.GeoCoordinates `json:"coordinates"`
}

type ThemeRequest struct {
	ThemeID string `json:"theme_id"`
}

type MapHandler struct {
	session *session.Session
	logger  *slog.Logger
}

func NewMapHandler(s *session.Session, logger *slog.Logger) *MapHandler {
	return &MapHandler{session: s, logger: logger}
}

func (h *MapHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.get)
	r.Put("/theme", h.setTheme)
	r.Get("/themes", h.themes)
	r.Put("/coordinates", h.setCoordinates)
	r.Delete("/coordinates", h.clearCoordinates)
	return r
}

func (h *MapHandler) respond(w http.ResponseWriter) {
	writeJSON(w, h.logger, http.StatusOK, MapResponse{
		Theme:       h.session.Theme(),
		Bounds:      h.session.Bounds(),
		Coordinates: h.session.Coordinates(),
	})
}

func (h *MapHandler) get(w http.ResponseWriter, r *http.Request) {
	h.respond(w)
}

func (h *MapHandler) setTheme(w http.ResponseWriter, r *http.Request) {
	var req ThemeRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := h.session.SetTheme(r.Context(), req.ThemeID); err != nil {
		writeError(w, h.logger, http.StatusNotFound, err.Error())
		return
	}
	h.respond(w)
}

// themes lists the catalogue, optionally filtered by ?type=
func (h *MapHandler) themes(w http.ResponseWriter, r *http.Request) {
	t := r.URL.Query().Get("type")
	if t == "" {
		writeJSON(w, h.logger, http.StatusOK, maptheme.Themes)
		return
	}
	switch maptheme.Type(t) {
	case maptheme.TypeTopographic, maptheme.TypePixel, maptheme.TypeAbstract:
	default:
		writeError(w, h.logger, http.StatusBadRequest, "unknown theme type")
		return
	}
	themes := maptheme.ByType(maptheme.Type(t))
	if themes == nil {
		themes = []maptheme.Theme{}
	}
	writeJSON(w, h.logger, http.StatusOK, themes)
}

func (h *MapHandler) setCoordinates(w http.ResponseWriter, r *http.Request) {
	var req lookup.GeoCoordinates
	if err := readJSON(r, &req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}
	if req.Latitude < -90 || req.Latitude > 90 || req.Longitude < -180 || req.Longitude > 180 {
		writeError(w, h.logger, http.StatusBadRequest, "coordinates out of range")
		return
	}
	h.session.SetCoordinates(r.Context(), &req)
	h.respond(w)
}

func (h *MapHandler) clearCoordinates(w http.ResponseWriter, r *http.Request) {
	h.session.SetCoordinates(r.Context(), nil)
	h.respond(w)
}
