package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/Pawel-dev5/character-map-app/internal/suggest"
	"github.com/Pawel-dev5/character-map-app/pkg/character"
	"github.com/Pawel-dev5/character-map-app/pkg/grid"
	"github.com/Pawel-dev5/character-map-app/pkg/lookup"
	"github.com/Pawel-dev5/character-map-app/pkg/maptheme"
)

const sidebarWidth = 44

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	sidebarStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2)

	focusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(lipgloss.Color("205")).
				PaddingLeft(1)

	panelStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	suggestionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	selectedSuggestionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	c := m.session.Character()
	theme := m.session.Theme()

	sidebar := sidebarStyle.Width(sidebarWidth).Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("CHARACTER MAP"),
		"",
		m.panel(focusName, m.nameInput.View()),
		m.panel(focusColor, lipgloss.JoinVertical(lipgloss.Left, m.colorInput.View(), m.renderColorInfo(c))),
		m.panel(focusMap, m.renderAvatarLine(c)),
		"",
		m.renderThemePicker(theme),
		m.renderAddressSearch(),
		"",
		m.renderStatus(),
		m.renderHelp(),
	))

	board := lipgloss.JoinVertical(lipgloss.Left,
		renderGrid(c, m.session.Bounds(), theme),
		renderPosition(c.Position, m.session.Coordinates()),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, board)
}

func (m ConsoleUI) panel(f focusArea, content string) string {
	if m.focus == f {
		return focusedPanelStyle.Render(content)
	}
	return panelStyle.Render(content)
}

func (m ConsoleUI) renderColorInfo(c character.Character) string {
	switch {
	case m.colorName.Loading():
		return loadingStyle.Render("Looking up color name...")
	case m.colorName.Err() != nil:
		var tag string
		switch {
		case m.colorName.IsNetworkError():
			tag = "[offline] "
		case m.colorName.IsTimeoutError():
			tag = "[timeout] "
		case m.colorName.IsInvalidColorError():
			tag = "[invalid] "
		}
		return errorStyle.Render(tag + m.colorName.Err().Message)
	case c.ColorName != "":
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("██")
		return swatch + " " + successStyle.Render(c.ColorName)
	}
	return ""
}

func (m ConsoleUI) renderAvatarLine(c character.Character) string {
	avatar := character.AvatarFor(c.AvatarType)
	glyph := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Bold(true).Render(avatar.GlyphFor(c.Name))
	return labelStyle.Render("avatar ") + glyph + " " + avatar.Label
}

func (m ConsoleUI) renderThemePicker(current maptheme.Theme) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("map: " + string(m.category)))
	b.WriteString("\n")
	for _, t := range maptheme.ByType(m.category) {
		if t.ID == current.ID {
			b.WriteString(selectedSuggestionStyle.Render("▶ " + t.Name))
		} else {
			b.WriteString(suggestionStyle.Render("  " + t.Name))
		}
		b.WriteString("\n")
	}
	b.WriteString(promptStyle.Render(wordwrap.String(current.Description, sidebarWidth-4)))
	return b.String()
}

// renderAddressSearch draws the input and dropdown, topographic maps only
func (m ConsoleUI) renderAddressSearch() string {
	if m.category != maptheme.TypeTopographic {
		return ""
	}

	lines := []string{"", m.panel(focusAddress, m.addressInput.View())}
	width := sidebarWidth - 6

	switch {
	case m.suggest.Searching():
		lines = append(lines, loadingStyle.Render("  Searching..."))
	case m.suggest.State() == suggest.StateFetching:
		lines = append(lines, loadingStyle.Render("  Loading suggestions..."))
	case m.suggest.State() == suggest.StateError:
		if e, _ := m.suggest.Err(); e != nil {
			lines = append(lines, errorStyle.Render(wordwrap.String("  "+e.Message, width)))
		}
	}

	if m.suggest.Visible() {
		for i, s := range m.suggest.Suggestions() {
			lines = append(lines, renderSuggestion(s, i == m.suggest.Selected(), width))
		}
	}

	switch res := m.suggest.LastSearch(); res.Status {
	case suggest.SearchFound:
		lines = append(lines, successStyle.Render(truncate.StringWithTail("  ✓ "+res.Message, uint(width), "…")))
	case suggest.SearchNotFound, suggest.SearchError:
		lines = append(lines, errorStyle.Render(wordwrap.String("  "+res.Message, width)))
	}
	return strings.Join(lines, "\n")
}

func renderSuggestion(s lookup.AddressSuggestion, selected bool, width int) string {
	primary := truncate.StringWithTail(s.PrimaryName(), uint(width), "…")
	out := suggestionStyle.Render("  " + primary)
	if selected {
		out = selectedSuggestionStyle.Render("▶ " + primary)
	}
	if details := s.Details(); details != "" {
		out += "\n    " + promptStyle.Render(truncate.StringWithTail(details, uint(width-2), "…"))
	}
	return out
}

func (m ConsoleUI) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return errorStyle.Render(m.status) + "\n"
	}
	return successStyle.Render(m.status) + "\n"
}

func (m ConsoleUI) renderHelp() string {
	help := "Tab: switch field • ←↑→↓: move • v: avatar • r: recenter • t: map type • [ ]: theme • y: copy coordinates • Ctrl+R: reset all • q: quit"
	return promptStyle.Render(wordwrap.String(help, sidebarWidth-4))
}

// renderGrid draws the board with the avatar in its cell
func renderGrid(c character.Character, b grid.Bounds, theme maptheme.Theme) string {
	glyph := character.AvatarFor(c.AvatarType).GlyphFor(c.Name)
	avatar := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Bold(true).Render(glyph)
	dot := separatorStyle.Render("·")

	rows := make([]string, 0, b.Height)
	for y := 0; y < b.Height; y++ {
		var row strings.Builder
		for x := 0; x < b.Width; x++ {
			if x > 0 {
				row.WriteString(" ")
			}
			if x == c.Position.X && y == c.Position.Y {
				row.WriteString(avatar)
			} else {
				row.WriteString(dot)
			}
		}
		rows = append(rows, row.String())
	}

	border := theme.BorderColor
	if border == "" {
		border = "#6b7280"
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1).
		Render(strings.Join(rows, "\n"))
}

func renderPosition(p grid.Position, coords *lookup.GeoCoordinates) string {
	line := promptStyle.Render(fmt.Sprintf(" position %d,%d", p.X, p.Y))
	if coords != nil {
		line += promptStyle.Render(" • " + formatCoordinates(coords.Latitude, coords.Longitude))
	}
	return line
}

func formatCoordinates(lat, lon float64) string {
	return fmt.Sprintf("%.6f, %.6f", lat, lon)
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Quit? (y/n)"
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit?"))
	content.WriteString("\n\n")
	content.WriteString("Your character and map are saved automatically.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())

	// Center the modal
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}
