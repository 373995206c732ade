package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Pawel-dev5/character-map-app/internal/colorname"
	"github.com/Pawel-dev5/character-map-app/internal/services"
	"github.com/Pawel-dev5/character-map-app/internal/session"
	"github.com/Pawel-dev5/character-map-app/internal/suggest"
	"github.com/Pawel-dev5/character-map-app/pkg/character"
	"github.com/Pawel-dev5/character-map-app/pkg/grid"
	"github.com/Pawel-dev5/character-map-app/pkg/maptheme"
)

type focusArea int

const (
	focusMap focusArea = iota
	focusName
	focusColor
	focusAddress
)

type nameDebounceMsg struct {
	seq int
}

type copiedMsg struct {
	text string
	err  error
}

type UIOptions struct {
	Debounce  time.Duration
	BlurGrace time.Duration
	Logger    *slog.Logger
}

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	ctx      context.Context
	session  *session.Session
	logger   *slog.Logger
	debounce time.Duration

	nameInput    textinput.Model
	colorInput   textinput.Model
	addressInput textinput.Model
	suggest      suggest.Pipeline
	colorName    colorname.Tracker

	focus    focusArea
	category maptheme.Type
	nameSeq  int
	initCmd  tea.Cmd

	status    string
	statusErr bool

	width  int
	height int

	// Quit confirmation state
	showQuitModal bool

	copyText func(string) error
}

func NewConsoleUI(ctx context.Context, s *session.Session, colors services.ColorNamer, geocoder services.Geocoder, opts UIOptions) ConsoleUI {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = suggest.DefaultQuietPeriod
	}
	c := s.Character()

	name := textinput.New()
	name.Placeholder = character.DefaultName
	name.Prompt = promptStyle.Render("name  › ")
	name.CharLimit = 30
	name.SetValue(c.Name)

	color := textinput.New()
	color.Placeholder = character.DefaultColor
	color.Prompt = promptStyle.Render("color › ")
	color.CharLimit = 7
	color.SetValue(c.Color)

	address := textinput.New()
	address.Placeholder = "Search for an address..."
	address.Prompt = promptStyle.Render("where › ")
	address.CharLimit = 200
	if coords := s.Coordinates(); coords != nil {
		address.SetValue(coords.Address)
	}

	m := ConsoleUI{
		ctx:          ctx,
		session:      s,
		logger:       opts.Logger,
		debounce:     opts.Debounce,
		nameInput:    name,
		colorInput:   color,
		addressInput: address,
		suggest: suggest.New(geocoder, suggest.Options{
			QuietPeriod: opts.Debounce,
			BlurGrace:   opts.BlurGrace,
			Logger:      opts.Logger,
		}),
		colorName: colorname.New(colors, opts.Logger),
		focus:     focusMap,
		category:  s.Theme().Type,
		copyText:  clipboard.WriteAll,
	}

	// fill in the name for a restored color that never got one
	if s.NeedsColorName() {
		m.initCmd = m.colorName.Fetch(c.Color)
	}
	return m
}

func (m ConsoleUI) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initCmd)
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// the modal only takes keys; lookups and ticks keep flowing underneath it
	if key, ok := msg.(tea.KeyMsg); ok && m.showQuitModal {
		return m.updateQuitModal(key)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case nameDebounceMsg:
		if msg.seq == m.nameSeq {
			m.session.SetName(m.ctx, m.nameInput.Value())
		}
		return m, nil

	case suggest.CoordinatesChangedMsg:
		m.session.SetCoordinates(m.ctx, msg.Coordinates)
		m.addressInput.SetValue(m.suggest.Value())
		m.addressInput.CursorEnd()
		return m, nil

	case colorname.ResolvedMsg:
		m.session.SetColorName(m.ctx, msg.Hex, msg.Name)
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.logger.Warn("Clipboard write failed", "error", msg.err)
			m.setStatus("Could not copy to clipboard", true)
		} else {
			m.setStatus("Copied "+msg.text, false)
		}
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.suggest, cmd = m.suggest.Update(msg)
	cmds = append(cmds, cmd)
	m.colorName, cmd = m.colorName.Update(msg)
	cmds = append(cmds, cmd)
	m.nameInput, cmd = m.nameInput.Update(msg)
	cmds = append(cmds, cmd)
	m.colorInput, cmd = m.colorInput.Update(msg)
	cmds = append(cmds, cmd)
	m.addressInput, cmd = m.addressInput.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m ConsoleUI) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.showQuitModal = true
		return m, nil
	case tea.KeyTab:
		return m.cycleFocus(1)
	case tea.KeyShiftTab:
		return m.cycleFocus(-1)
	}

	switch m.focus {
	case focusName:
		return m.handleNameKey(msg)
	case focusColor:
		return m.handleColorKey(msg)
	case focusAddress:
		return m.handleAddressKey(msg)
	default:
		return m.handleMapKey(msg)
	}
}

func (m ConsoleUI) handleMapKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		m.session.Move(m.ctx, grid.Up)
	case tea.KeyDown:
		m.session.Move(m.ctx, grid.Down)
	case tea.KeyLeft:
		m.session.Move(m.ctx, grid.Left)
	case tea.KeyRight:
		m.session.Move(m.ctx, grid.Right)
	case tea.KeyEsc:
		m.showQuitModal = true
	case tea.KeyCtrlR:
		m.session.Reset(m.ctx)
		m.resetInputs()
		m.setStatus("Everything reset to defaults", false)
		return m, m.colorName.Fetch(m.session.Character().Color)
	case tea.KeyRunes:
		switch msg.String() {
		case "q":
			m.showQuitModal = true
		case "r":
			m.session.ResetPosition(m.ctx)
		case "v":
			c := m.session.Character()
			m.session.SetAvatarType(m.ctx, c.AvatarType.Next())
		case "t":
			return m.toggleCategory()
		case "]":
			m.stepTheme(1)
		case "[":
			m.stepTheme(-1)
		case "y":
			return m, m.copyCoordinates()
		}
	}
	return m, nil
}

// handleNameKey debounces name edits so storage sees one write per pause
func (m ConsoleUI) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter || msg.Type == tea.KeyEsc {
		m.nameSeq++
		m.session.SetName(m.ctx, m.nameInput.Value())
		return m.setFocus(focusMap)
	}

	before := m.nameInput.Value()
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	if m.nameInput.Value() == before {
		return m, cmd
	}

	m.nameSeq++
	seq := m.nameSeq
	return m, tea.Batch(cmd, tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return nameDebounceMsg{seq: seq}
	}))
}

func (m ConsoleUI) handleColorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.colorInput.SetValue(m.session.Character().Color)
		return m.setFocus(focusMap)
	case tea.KeyEnter:
		return m.applyColor()
	}
	var cmd tea.Cmd
	m.colorInput, cmd = m.colorInput.Update(msg)
	return m, cmd
}

// applyColor stores a valid color and looks up its name. An invalid value is
// still sent to the tracker, which reports it without touching the network.
func (m ConsoleUI) applyColor() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.colorInput.Value())
	m.colorName.ClearError()

	c, err := m.session.SetColor(m.ctx, value)
	if err != nil {
		return m, m.colorName.Fetch(value)
	}
	m.colorInput.SetValue(c.Color)
	if c.ColorName != "" {
		return m, nil
	}
	return m, m.colorName.Fetch(c.Color)
}

func (m ConsoleUI) handleAddressKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyEnter:
		var cmd tea.Cmd
		m.suggest, cmd = m.suggest.Update(msg)
		return m, cmd
	case tea.KeyEsc:
		if !m.suggest.Visible() {
			return m.setFocus(focusMap)
		}
		m.suggest, _ = m.suggest.Update(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.addressInput, cmd = m.addressInput.Update(msg)
	return m, tea.Batch(cmd, m.suggest.SetInput(m.addressInput.Value()))
}

func (m ConsoleUI) focusOrder() []focusArea {
	order := []focusArea{focusMap, focusName, focusColor}
	if m.category == maptheme.TypeTopographic {
		order = append(order, focusAddress)
	}
	return order
}

func (m ConsoleUI) cycleFocus(step int) (tea.Model, tea.Cmd) {
	order := m.focusOrder()
	idx := 0
	for i, f := range order {
		if f == m.focus {
			idx = i
		}
	}
	next := order[(idx+step+len(order))%len(order)]
	return m.setFocus(next)
}

func (m ConsoleUI) setFocus(f focusArea) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.focus == focusAddress && f != focusAddress {
		m.addressInput.Blur()
		cmds = append(cmds, m.suggest.Blur())
	}
	if m.focus == focusName && f != focusName {
		m.nameInput.Blur()
	}
	if m.focus == focusColor && f != focusColor {
		m.colorInput.Blur()
	}

	m.focus = f
	switch f {
	case focusName:
		cmds = append(cmds, m.nameInput.Focus())
	case focusColor:
		cmds = append(cmds, m.colorInput.Focus())
	case focusAddress:
		m.suggest.Focus()
		cmds = append(cmds, m.addressInput.Focus())
	}
	return m, tea.Batch(cmds...)
}

// toggleCategory switches between pixel and topographic maps, selecting the
// first theme of the new category.
func (m ConsoleUI) toggleCategory() (tea.Model, tea.Cmd) {
	next := maptheme.TypeTopographic
	if m.category == maptheme.TypeTopographic {
		next = maptheme.TypePixel
	}
	themes := maptheme.ByType(next)
	if len(themes) == 0 {
		return m, nil
	}
	m.category = next
	if _, err := m.session.SetTheme(m.ctx, themes[0].ID); err != nil {
		m.logger.Error("Failed to select theme", "theme_id", themes[0].ID, "error", err)
	}
	return m, nil
}

func (m *ConsoleUI) stepTheme(step int) {
	themes := maptheme.ByType(m.category)
	if len(themes) == 0 {
		return
	}
	current := m.session.Theme().ID
	idx := 0
	for i, t := range themes {
		if t.ID == current {
			idx = i
		}
	}
	next := themes[(idx+step+len(themes))%len(themes)]
	if _, err := m.session.SetTheme(m.ctx, next.ID); err != nil {
		m.logger.Error("Failed to select theme", "theme_id", next.ID, "error", err)
	}
}

func (m ConsoleUI) copyCoordinates() tea.Cmd {
	coords := m.session.Coordinates()
	if coords == nil {
		return nil
	}
	text := formatCoordinates(coords.Latitude, coords.Longitude)
	write := m.copyText
	return func() tea.Msg {
		return copiedMsg{text: text, err: write(text)}
	}
}

func (m *ConsoleUI) resetInputs() {
	c := m.session.Character()
	m.nameInput.SetValue(c.Name)
	m.colorInput.SetValue(c.Color)
	m.addressInput.SetValue("")
	m.suggest.Reset()
	m.category = m.session.Theme().Type
}

func (m *ConsoleUI) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m ConsoleUI) updateQuitModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEnter:
		return m, tea.Quit
	case tea.KeyEsc:
		m.showQuitModal = false
		return m, nil
	}

	switch msg.String() {
	case "y", "Y":
		return m, tea.Quit
	case "n", "N":
		m.showQuitModal = false
	}
	return m, nil
}
