package suggest

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Pawel-dev5/character-map-app/internal/services"
	"github.com/Pawel-dev5/character-map-app/pkg/lookup"
)

const (
	DefaultQuietPeriod = 300 * time.Millisecond
	DefaultBlurGrace   = 200 * time.Millisecond
	DefaultMinLength   = 3
)

// State is the pipeline's position in the debounce/fetch cycle
type State int

const (
	StateIdle State = iota
	StateDebouncing
	StateFetching
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateDebouncing:
		return "debouncing"
	case StateFetching:
		return "fetching"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

// SearchStatus is the outcome of an explicit Enter-without-selection search
type SearchStatus int

const (
	SearchNone SearchStatus = iota
	SearchFound
	SearchNotFound
	SearchError
)

// SearchResult describes the last explicit search or committed suggestion
type SearchResult struct {
	Status      SearchStatus
	Message     string
	Coordinates *lookup.GeoCoordinates
}

// PendingQuery is a read-only snapshot of the pipeline's working state
type PendingQuery struct {
	RawInput       string
	DebouncedInput string
	InFlightToken  uint64 // zero when no suggestion request is outstanding
	Suggestions    []lookup.AddressSuggestion
	SelectedIndex  int
	IsFetching     bool
}

// CoordinatesChangedMsg is emitted when a suggestion is committed or an
// explicit search finishes. Coordinates is nil when the search found nothing.
type CoordinatesChangedMsg struct {
	Coordinates *lookup.GeoCoordinates
}

type debounceMsg struct {
	id  int
	seq int
}

type blurMsg struct {
	id  int
	seq int
}

type suggestionsMsg struct {
	id     int
	token  uint64
	query  string
	result lookup.Result[[]lookup.AddressSuggestion]
}

type searchMsg struct {
	id     int
	token  uint64
	result lookup.Result[lookup.GeoCoordinates]
}

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// Options tunes a Pipeline. Zero values pick the defaults.
type Options struct {
	QuietPeriod time.Duration
	BlurGrace   time.Duration
	MinLength   int
	Logger      *slog.Logger
}

// Pipeline turns address keystrokes into ranked suggestions. It is a
// bubbletea component: all state changes happen inside Update and the
// mutator methods, on the program's event loop, and every network call runs
// as a tea.Cmd whose result comes back as a message.
//
// Each suggestion request carries a token from a monotonically increasing
// counter; a response is applied only if its token is still the latest, so a
// slow answer to an old keystroke can never overwrite a newer one.
type Pipeline struct {
	id          int
	geocoder    services.Geocoder
	logger      *slog.Logger
	quietPeriod time.Duration
	blurGrace   time.Duration
	minLength   int

	rawInput       string
	debouncedInput string
	inputSeq       int

	token       uint64 // latest issued suggestion token
	fetching    bool
	suggestions []lookup.AddressSuggestion
	selected    int
	visible     bool
	state       State
	err         *lookup.Error
	errKind     lookup.ErrorKind

	searchToken uint64
	searching   bool
	search      SearchResult

	focused bool
	blurSeq int
}

// New creates an idle pipeline backed by geocoder
func New(geocoder services.Geocoder, opts Options) Pipeline {
	if opts.QuietPeriod <= 0 {
		opts.QuietPeriod = DefaultQuietPeriod
	}
	if opts.BlurGrace <= 0 {
		opts.BlurGrace = DefaultBlurGrace
	}
	if opts.MinLength <= 0 {
		opts.MinLength = DefaultMinLength
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return Pipeline{
		id:          nextID(),
		geocoder:    geocoder,
		logger:      opts.Logger,
		quietPeriod: opts.QuietPeriod,
		blurGrace:   opts.BlurGrace,
		minLength:   opts.MinLength,
		selected:    -1,
	}
}

// SetInput records a keystroke. The raw value is updated immediately and the
// quiet-period timer restarts; an unchanged value is a no-op.
func (p *Pipeline) SetInput(value string) tea.Cmd {
	if value == p.rawInput {
		return nil
	}
	p.rawInput = value
	p.inputSeq++
	p.search = SearchResult{}
	p.state = StateDebouncing

	id, seq := p.id, p.inputSeq
	return tea.Tick(p.quietPeriod, func(time.Time) tea.Msg {
		return debounceMsg{id: id, seq: seq}
	})
}

// Update applies timer and response messages. Messages addressed to another
// pipeline, and stale ones, are ignored.
func (p Pipeline) Update(msg tea.Msg) (Pipeline, tea.Cmd) {
	switch msg := msg.(type) {
	case debounceMsg:
		if msg.id != p.id || msg.seq != p.inputSeq {
			return p, nil
		}
		return p, p.debounceElapsed()

	case suggestionsMsg:
		if msg.id != p.id {
			return p, nil
		}
		if msg.token != p.token {
			p.logger.Debug("Dropping superseded suggestions", "token", msg.token, "latest", p.token, "query", msg.query)
			return p, nil
		}
		p.applySuggestions(msg)
		return p, nil

	case searchMsg:
		if msg.id != p.id || msg.token != p.searchToken {
			return p, nil
		}
		return p, p.applySearch(msg.result)

	case blurMsg:
		if msg.id != p.id || msg.seq != p.blurSeq || p.focused {
			return p, nil
		}
		p.Dismiss()
		return p, nil

	case tea.KeyMsg:
		if !p.focused {
			return p, nil
		}
		switch msg.Type {
		case tea.KeyDown:
			p.MoveSelection(1)
		case tea.KeyUp:
			p.MoveSelection(-1)
		case tea.KeyEnter:
			return p, p.Enter()
		case tea.KeyEsc:
			p.Dismiss()
		}
	}
	return p, nil
}

func (p *Pipeline) debounceElapsed() tea.Cmd {
	p.debouncedInput = p.rawInput
	query := strings.TrimSpace(p.debouncedInput)

	// any earlier request is superseded, whether or not a new one is issued
	p.token++
	if utf8.RuneCountInString(query) < p.minLength {
		p.clearSuggestions()
		p.fetching = false
		p.err = nil
		p.state = StateIdle
		return nil
	}

	p.fetching = true
	p.state = StateFetching
	id, token, g := p.id, p.token, p.geocoder
	return func() tea.Msg {
		return suggestionsMsg{
			id:     id,
			token:  token,
			query:  query,
			result: g.SuggestAddresses(context.Background(), query),
		}
	}
}

func (p *Pipeline) applySuggestions(msg suggestionsMsg) {
	p.fetching = false
	if msg.result.Success {
		p.suggestions = msg.result.Data
		p.selected = -1
		p.visible = len(p.suggestions) > 0
		p.err = nil
		p.errKind = ""
		p.state = StateReady
		return
	}

	p.logger.Error("Error fetching suggestions",
		"query", msg.query,
		"error_type", msg.result.ErrorType,
		"error", msg.result.Message())
	p.clearSuggestions()
	p.err = msg.result.Error
	p.errKind = msg.result.ErrorType
	p.state = StateError
}

func (p *Pipeline) applySearch(result lookup.Result[lookup.GeoCoordinates]) tea.Cmd {
	p.searching = false
	switch {
	case result.Success:
		coords := result.Data
		p.search = SearchResult{Status: SearchFound, Message: coords.Address, Coordinates: &coords}
		return emit(&coords)
	case result.ErrorType == lookup.ErrInvalidInput:
		p.search = SearchResult{Status: SearchNotFound, Message: result.Message()}
	default:
		p.logger.Warn("Address search failed", "error_type", result.ErrorType, "error", result.Message())
		p.search = SearchResult{Status: SearchError, Message: result.Message()}
	}
	return emit(nil)
}

// MoveSelection steps the highlighted suggestion by delta. It only acts on a
// visible list in the Ready state and clamps to [-1, len-1], where -1 means
// nothing is highlighted.
func (p *Pipeline) MoveSelection(delta int) bool {
	if p.state != StateReady || !p.visible || len(p.suggestions) == 0 {
		return false
	}
	next := p.selected + delta
	if next < -1 {
		next = -1
	}
	if next > len(p.suggestions)-1 {
		next = len(p.suggestions) - 1
	}
	p.selected = next
	return true
}

// Enter commits the highlighted suggestion, or starts a fresh search when
// nothing is highlighted.
func (p *Pipeline) Enter() tea.Cmd {
	if p.visible && p.selected >= 0 && p.selected < len(p.suggestions) {
		return p.Select(p.selected)
	}
	return p.Search()
}

// Select commits suggestion i, as a click on the dropdown does. The input
// takes the suggestion's text, the list is cleared and its coordinates are
// emitted.
func (p *Pipeline) Select(i int) tea.Cmd {
	if i < 0 || i >= len(p.suggestions) {
		return nil
	}
	chosen := p.suggestions[i]
	p.supersede()
	p.rawInput = chosen.DisplayName
	p.debouncedInput = chosen.DisplayName
	p.clearSuggestions()
	p.state = StateIdle

	coords := chosen.GeoCoordinates()
	p.search = SearchResult{Status: SearchFound, Message: chosen.DisplayName, Coordinates: &coords}
	return emit(&coords)
}

// Search geocodes the current input directly. Pending suggestion work is
// superseded and the dropdown is hidden.
func (p *Pipeline) Search() tea.Cmd {
	query := strings.TrimSpace(p.rawInput)
	if query == "" {
		return nil
	}
	p.supersede()
	p.visible = false
	p.selected = -1
	p.state = StateIdle
	p.searchToken++
	p.searching = true
	p.search = SearchResult{}

	id, token, g := p.id, p.searchToken, p.geocoder
	return func() tea.Msg {
		return searchMsg{id: id, token: token, result: g.GeocodeAddress(context.Background(), query)}
	}
}

// Dismiss returns to Idle without emitting coordinates: the dropdown closes and
// pending timers, requests and searches are dropped. The typed text is kept.
func (p *Pipeline) Dismiss() {
	p.supersede()
	p.searchToken++
	p.searching = false
	p.visible = false
	p.selected = -1
	p.state = StateIdle
}

// Focus marks the input focused, cancels a pending blur and re-shows a
// cached list.
func (p *Pipeline) Focus() {
	p.focused = true
	p.blurSeq++
	if len(p.suggestions) > 0 && (p.state == StateIdle || p.state == StateReady) {
		p.visible = true
		p.state = StateReady
	}
}

// Blur dismisses the dropdown after the grace delay, which leaves time for a
// click on a suggestion to land first.
func (p *Pipeline) Blur() tea.Cmd {
	p.focused = false
	p.blurSeq++
	id, seq := p.id, p.blurSeq
	return tea.Tick(p.blurGrace, func(time.Time) tea.Msg {
		return blurMsg{id: id, seq: seq}
	})
}

// Reset clears input and results
func (p *Pipeline) Reset() {
	p.Dismiss()
	p.rawInput = ""
	p.debouncedInput = ""
	p.suggestions = nil
	p.err = nil
	p.errKind = ""
	p.search = SearchResult{}
}

// supersede invalidates the pending debounce timer and any in-flight request
func (p *Pipeline) supersede() {
	p.inputSeq++
	p.token++
	p.fetching = false
}

func (p *Pipeline) clearSuggestions() {
	p.suggestions = nil
	p.visible = false
	p.selected = -1
}

func emit(coords *lookup.GeoCoordinates) tea.Cmd {
	return func() tea.Msg {
		return CoordinatesChangedMsg{Coordinates: coords}
	}
}

func (p Pipeline) Value() string            { return p.rawInput }
func (p Pipeline) DebouncedValue() string   { return p.debouncedInput }
func (p Pipeline) State() State             { return p.state }
func (p Pipeline) Visible() bool            { return p.visible }
func (p Pipeline) Selected() int            { return p.selected }
func (p Pipeline) Fetching() bool           { return p.fetching }
func (p Pipeline) Searching() bool          { return p.searching }
func (p Pipeline) Focused() bool            { return p.focused }
func (p Pipeline) LastSearch() SearchResult { return p.search }

// Suggestions returns the current list in server order
func (p Pipeline) Suggestions() []lookup.AddressSuggestion {
	return append([]lookup.AddressSuggestion(nil), p.suggestions...)
}

// Err returns the classified failure of the last suggestion fetch, if any
func (p Pipeline) Err() (*lookup.Error, lookup.ErrorKind) {
	return p.err, p.errKind
}

// Snapshot returns the pending query state
func (p Pipeline) Snapshot() PendingQuery {
	var inFlight uint64
	if p.fetching {
		inFlight = p.token
	}
	return PendingQuery{
		RawInput:       p.rawInput,
		DebouncedInput: p.debouncedInput,
		InFlightToken:  inFlight,
		Suggestions:    p.Suggestions(),
		SelectedIndex:  p.selected,
		IsFetching:     p.fetching,
	}
}
