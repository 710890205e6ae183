package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
)

// page_views.go provides a fluent API for building consistent page views.

// PageViewBuilder assembles a titled page in the two-box layout.
//
// Example usage:
//
//	return NewPageView(m.Layout).
//	    Title("Raw Trip Data").
//	    Divider().
//	    QueryInfo("Rows 1-5 of 120").
//	    Table(m.table).
//	    Status(m.StatusMsg).
//	    Help("n: next page | q: quit").
//	    Build()
type PageViewBuilder struct {
	layout     Layout
	content    strings.Builder
	helpText   string
	hadContent bool
}

// NewPageView creates a new PageViewBuilder with the given layout.
func NewPageView(layout Layout) *PageViewBuilder {
	return &PageViewBuilder{layout: layout}
}

// Title adds a title line (bold white).
func (b *PageViewBuilder) Title(title string) *PageViewBuilder {
	b.line(RenderTitle(title))
	return b
}

// Divider adds a full-width horizontal divider.
func (b *PageViewBuilder) Divider() *PageViewBuilder {
	b.line(Divider(b.layout.InnerWidth))
	return b
}

// QueryInfo adds filter information (accented yellow).
func (b *PageViewBuilder) QueryInfo(info string) *PageViewBuilder {
	b.line(AccentStyle.Render(info))
	return b
}

// Table adds a rendered bubbles table.
func (b *PageViewBuilder) Table(t table.Model) *PageViewBuilder {
	if b.hadContent {
		b.content.WriteString("\n")
	}
	b.line(t.View())
	return b
}

// Status adds a status message (if not empty).
func (b *PageViewBuilder) Status(msg string) *PageViewBuilder {
	if msg != "" {
		if b.hadContent {
			b.content.WriteString("\n")
		}
		b.line(StatusMsgStyle.Render(msg))
	}
	return b
}

// Help sets the help text for the footer box.
func (b *PageViewBuilder) Help(helpText string) *PageViewBuilder {
	b.helpText = helpText
	return b
}

// Build constructs the final view string with two-box layout.
func (b *PageViewBuilder) Build() string {
	return BuildTwoBoxView(b.content.String(), b.helpText, b.layout)
}

func (b *PageViewBuilder) line(s string) {
	b.content.WriteString(s)
	b.content.WriteString("\n")
	b.hadContent = true
}
