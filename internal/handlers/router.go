package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Pawel-dev5/character-map-app/internal/middleware"
	"github.com/Pawel-dev5/character-map-app/internal/services"
	"github.com/Pawel-dev5/character-map-app/internal/session"
	"github.com/Pawel-dev5/character-map-app/internal/storage"
)

type RouterDeps struct {
	Store    storage.Store
	Session  *session.Session
	Colors   services.ColorNamer
	Geocoder services.Geocoder
	Logger   *slog.Logger
}

// NewRouter wires every endpoint behind the shared middleware stack
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(d.Logger))
	r.Use(chimw.Recoverer)

	r.Method(http.MethodGet, "/health", NewHealthHandler(d.Store, d.Logger))

	r.Route("/v1", func(r chi.Router) {
		NewLookupHandler(d.Colors, d.Geocoder, d.Logger).Register(r)
		r.Mount("/character", NewCharacterHandler(d.Session, d.Logger).Routes())
		r.Mount("/map", NewMapHandler(d.Session, d.Logger).Routes())
		r.Delete("/session", handleSessionReset(d.Session, d.Logger))
	})

	return r
}

func handleSessionReset(s *session.Session, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Reset(r.Context())
		logger.Info("Session reset", "request_id", middleware.RequestIDFrom(r))
		w.WriteHeader(http.StatusNoContent)
	}
}
