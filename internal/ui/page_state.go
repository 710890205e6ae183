package ui

// page_state.go provides shared state for full-screen TUI pages.
// Embed PageState in page models to get consistent layout and status handling.

// PageState contains common state that all pages need
type PageState struct {
	Layout    Layout
	StatusMsg string
	Quitting  bool
}

// NewPageState creates a new PageState with the given layout
func NewPageState(layout Layout) PageState {
	return PageState{Layout: layout}
}

// SetStatus replaces the status line
func (p *PageState) SetStatus(msg string) {
	p.StatusMsg = msg
}

// UpdateLayout updates the layout and returns true if it changed.
// Use this in your WindowSizeMsg handler.
func (p *PageState) UpdateLayout(width, height int) bool {
	newLayout := NewLayout(width, height)
	if newLayout != p.Layout {
		p.Layout = newLayout
		return true
	}
	return false
}
