package colorname

import (
	"context"
	"log/slog"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Pawel-dev5/character-map-app/internal/services"
	"github.com/Pawel-dev5/character-map-app/pkg/lookup"
)

// ResolvedMsg is emitted when the latest requested color gets a name
type ResolvedMsg struct {
	Hex  string
	Name string
}

type resultMsg struct {
	id     int
	token  uint64
	hex    string
	result lookup.Result[string]
}

var lastID int64

// Tracker resolves color names for the console. Only the most recent Fetch
// can change its state; earlier responses are discarded when they arrive.
type Tracker struct {
	id     int
	namer  services.ColorNamer
	logger *slog.Logger

	token   uint64
	loading bool
	hex     string
	name    string
	err     *lookup.Error
	kind    lookup.ErrorKind
}

func New(namer services.ColorNamer, logger *slog.Logger) Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return Tracker{
		id:     int(atomic.AddInt64(&lastID, 1)),
		namer:  namer,
		logger: logger,
	}
}

// Fetch starts a lookup for hex, superseding any lookup still in flight
func (t *Tracker) Fetch(hex string) tea.Cmd {
	t.token++
	t.loading = true
	t.hex = hex
	t.err = nil
	t.kind = ""

	id, token, namer := t.id, t.token, t.namer
	return func() tea.Msg {
		return resultMsg{id: id, token: token, hex: hex, result: namer.FetchColorName(context.Background(), hex)}
	}
}

func (t Tracker) Update(msg tea.Msg) (Tracker, tea.Cmd) {
	m, ok := msg.(resultMsg)
	if !ok || m.id != t.id || m.token != t.token {
		return t, nil
	}
	t.loading = false
	if !m.result.Success {
		t.logger.Warn("Color name lookup failed", "hex", m.hex, "error_type", m.result.ErrorType, "error", m.result.Message())
		t.err = m.result.Error
		t.kind = m.result.ErrorType
		return t, nil
	}

	t.name = m.result.Data
	resolved := ResolvedMsg{Hex: m.hex, Name: m.result.Data}
	return t, func() tea.Msg { return resolved }
}

// ClearError drops the last failure without touching the name
func (t *Tracker) ClearError() {
	t.err = nil
	t.kind = ""
}

func (t Tracker) Loading() bool          { return t.loading }
func (t Tracker) Name() string           { return t.name }
func (t Tracker) Hex() string            { return t.hex }
func (t Tracker) Err() *lookup.Error     { return t.err }
func (t Tracker) Kind() lookup.ErrorKind { return t.kind }

func (t Tracker) IsNetworkError() bool      { return t.err != nil && t.kind == lookup.ErrNetwork }
func (t Tracker) IsTimeoutError() bool      { return t.err != nil && t.kind == lookup.ErrTimeout }
func (t Tracker) IsInvalidColorError() bool { return t.err != nil && t.kind == lookup.ErrInvalidInput }
