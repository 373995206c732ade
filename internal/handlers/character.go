package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Pawel-dev5/character-map-app/internal/session"
	"github.com/Pawel-dev5/character-map-app/pkg/character"
	"github.com/Pawel-dev5/character-map-app/pkg/grid"
)

// CharacterPatch carries the fields a client wants to change; nil fields are left alone
type CharacterPatch struct {
	Name       *string `json:"name,omitempty"`
	Color      *string `json:"color,omitempty"`
	AvatarType *string `json:"avatar_type,omitempty"`
}

type MoveRequest struct {
	Direction string `json:"direction"`
}

type CharacterResponse struct {
	Character character.Character `json:"character"`
	Glyph     string              `json:"glyph"`
	Bounds    grid.Bounds         `json:"bounds"`
}

type CharacterHandler struct {
	session *session.Session
	logger  *slog.Logger
}

func NewCharacterHandler(s *session.Session, logger *slog.Logger) *CharacterHandler {
	return &CharacterHandler{session: s, logger: logger}
}

func (h *CharacterHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.get)
	r.Patch("/", h.patch)
	r.Post("/move", h.move)
	r.Post("/reset", h.reset)
	return r
}

func (h *CharacterHandler) respond(w http.ResponseWriter, status int) {
	c := h.session.Character()
	writeJSON(w, h.logger, status, CharacterResponse{
		Character: c,
		Glyph:     character.AvatarFor(c.AvatarType).GlyphFor(c.Name),
		Bounds:    h.session.Bounds(),
	})
}

func (h *CharacterHandler) get(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK)
}

func (h *CharacterHandler) patch(w http.ResponseWriter, r *http.Request) {
	var req CharacterPatch
	if err := readJSON(r, &req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	// validate everything before applying anything
	if req.Color != nil {
		if _, ok := character.NormalizeHex(*req.Color); !ok {
			writeError(w, h.logger, http.StatusBadRequest, "color must be a 6-digit hex value")
			return
		}
	}
	var avatar character.AvatarType
	if req.AvatarType != nil {
		t, ok := character.LookupAvatarType(*req.AvatarType)
		if !ok {
			writeError(w, h.logger, http.StatusBadRequest, "unknown avatar_type")
			return
		}
		avatar = t
	}

	ctx := r.Context()
	if req.Name != nil {
		h.session.SetName(ctx, *req.Name)
	}
	if req.Color != nil {
		if _, err := h.session.SetColor(ctx, *req.Color); err != nil {
			writeError(w, h.logger, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.AvatarType != nil {
		h.session.SetAvatarType(ctx, avatar)
	}
	h.respond(w, http.StatusOK)
}

func (h *CharacterHandler) move(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}
	d, err := grid.ParseDirection(req.Direction)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}
	h.session.Move(r.Context(), d)
	h.respond(w, http.StatusOK)
}

func (h *CharacterHandler) reset(w http.ResponseWriter, r *http.Request) {
	h.session.ResetPosition(r.Context())
	h.respond(w, http.StatusOK)
}
