package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Layout constants - single source of truth for all viewport dimensions
const (
	MinViewportWidth  = 80
	MaxViewportWidth  = 160
	DefaultWidth      = 110 // Used when terminal size is unknown
	DefaultHeight     = 30
	MinViewportHeight = 12
	HelpBoxHeight     = 3 // one line of help plus borders
)

// Layout holds computed dimensions for the current terminal size
type Layout struct {
	ViewportWidth  int // clamped terminal width
	ViewportHeight int // terminal height
	InnerWidth     int // ViewportWidth - 2 border chars
	TableWidth     int // InnerWidth minus column padding
}

// NewLayout creates a Layout from the terminal size, clamping to min/max
func NewLayout(terminalWidth, terminalHeight int) Layout {
	width := clamp(terminalWidth, MinViewportWidth, MaxViewportWidth)
	height := terminalHeight
	if height < MinViewportHeight {
		height = MinViewportHeight
	}
	return Layout{
		ViewportWidth:  width,
		ViewportHeight: height,
		InnerWidth:     width - 2,
		TableWidth:     width - 4,
	}
}

// DefaultLayout returns a layout using the default size
func DefaultLayout() Layout {
	return NewLayout(DefaultWidth, DefaultHeight)
}

// clamp restricts a value to the given range
func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Color palette - centralized color definitions
var (
	ColorBorder    = lipgloss.Color("196") // red
	ColorHighlight = lipgloss.Color("88")  // dark red background
	ColorText      = lipgloss.Color("15")  // bright white
	ColorAccent    = lipgloss.Color("226") // bright yellow
	ColorAccentDim = lipgloss.Color("220") // yellow (progress)
	ColorTextDim   = lipgloss.Color("241") // gray
	ColorSuccess   = lipgloss.Color("82")  // green
	ColorInfo      = lipgloss.Color("86")  // cyan
)

// Common styles - reusable style definitions
var (
	// Border style for main viewport
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	// Help box border
	HelpBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorText)

	// Title style for section headers
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText)

	// Selected row/item style
	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorHighlight).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	HintStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Italic(true)

	// Accent style for highlighted text (yellow)
	AccentStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	ProgressStyle = lipgloss.NewStyle().
			Foreground(ColorAccentDim)

	// Label/value pairs in the report
	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	StatusMsgStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Italic(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorBorder).
			Bold(true)
)

// RenderTitle renders a bold section title
func RenderTitle(s string) string { return TitleStyle.Render(s) }

// RenderDim renders secondary text
func RenderDim(s string) string { return DimStyle.Render(s) }

// RenderNormal renders body text
func RenderNormal(s string) string { return NormalStyle.Render(s) }

// RenderError renders an error line
func RenderError(s string) string { return ErrorStyle.Render(s) }

// Divider returns a horizontal rule of the given width
func Divider(width int) string {
	if width < 0 {
		width = 0
	}
	return strings.Repeat("─", width)
}

// BuildTwoBoxView renders content in the red main box and helpText in a
// one-line box underneath.
func BuildTwoBoxView(content, helpText string, layout Layout) string {
	mainHeight := layout.ViewportHeight - HelpBoxHeight - 2
	if mainHeight < 1 {
		mainHeight = 1
	}

	main := BorderStyle.
		Width(layout.InnerWidth).
		Height(mainHeight).
		Render(strings.TrimRight(content, "\n"))

	help := HelpBorderStyle.
		Width(layout.InnerWidth).
		Align(lipgloss.Center).
		Render(HintStyle.Render(helpText))

	return lipgloss.JoinVertical(lipgloss.Left, main, help)
}

// ApplyTableStyles gives a bubbles table the app's header and selection look
func ApplyTableStyles(t *table.Model) {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorTextDim).
		BorderBottom(true).
		Foreground(ColorText).
		Bold(true)
	s.Cell = s.Cell.Foreground(ColorText)
	s.Selected = SelectedStyle
	t.SetStyles(s)
}

// NewAppSpinner returns the white dot spinner used for blocking work
func NewAppSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorText)
	return s
}

// NewAppTheme creates a huh theme matching the app's style guide
// White text, red highlights/selection
func NewAppTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Title styling - white bold
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(ColorText).
		Bold(true)
	t.Blurred.Title = t.Focused.Title

	t.Focused.Description = lipgloss.NewStyle().
		Foreground(ColorText)
	t.Blurred.Description = t.Focused.Description

	t.Focused.Base = lipgloss.NewStyle().
		Foreground(ColorText)
	t.Blurred.Base = t.Focused.Base

	// Selected option - red background, white text
	t.Focused.SelectedOption = lipgloss.NewStyle().
		Foreground(ColorText).
		Background(ColorBorder).
		Bold(true).
		Padding(0, 1)

	t.Focused.UnselectedOption = lipgloss.NewStyle().
		Foreground(ColorText).
		Padding(0, 1)

	t.Focused.SelectSelector = lipgloss.NewStyle().
		Foreground(ColorBorder).
		SetString("> ")

	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(ColorText).
		Background(ColorBorder).
		Bold(true).
		Padding(0, 1)

	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(ColorText).
		Padding(0, 1)

	t.Focused.ErrorMessage = ErrorStyle

	return t
}
