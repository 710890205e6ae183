package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	splashGreeting = "Hello! Let's explore some US bikeshare data!"
	splashHint     = "Chicago · New York City · Washington"
	splashDuration = 2 * time.Second
)

// SplashModel is the TUI model for the welcome screen
type SplashModel struct {
	layout Layout
	done   bool
}

type splashTimeoutMsg struct{}

func waitForTimeout() tea.Cmd {
	return tea.Tick(splashDuration, func(time.Time) tea.Msg {
		return splashTimeoutMsg{}
	})
}

func (m SplashModel) Init() tea.Cmd {
	return waitForTimeout()
}

func (m SplashModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = NewLayout(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg, splashTimeoutMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m SplashModel) View() string {
	if m.done {
		return ""
	}
	return renderSplash(m.layout)
}

// renderSplash centers the greeting inside the red viewport border
func renderSplash(layout Layout) string {
	height := layout.ViewportHeight - 4
	if height < 5 {
		height = 5
	}

	text := lipgloss.JoinVertical(lipgloss.Center,
		AccentStyle.Render(splashGreeting),
		"",
		RenderDim(splashHint),
	)

	body := lipgloss.Place(layout.InnerWidth, height, lipgloss.Center, lipgloss.Center, text)
	return "\n" + BorderStyle.Width(layout.InnerWidth).Render(strings.TrimRight(body, "\n"))
}

// ShowSplash displays the welcome screen until a key is pressed or it times out
func ShowSplash() {
	p := tea.NewProgram(SplashModel{layout: DefaultLayout()}, tea.WithAltScreen())
	_, _ = p.Run()
}

// PrintGreeting prints the welcome line without taking over the screen
func PrintGreeting() {
	PrintSuccess(splashGreeting)
}
