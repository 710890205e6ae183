package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/thesavant42/bikeshare-ng/internal/models"
)

// Paginator walks a row count in fixed-size pages
type Paginator struct {
	total int
	size  int
	next  int // first row of the next page
}

// NewPaginator creates a paginator over total rows. A non-positive size
// falls back to models.DefaultPageSize.
func NewPaginator(total, size int) *Paginator {
	if size <= 0 {
		size = models.DefaultPageSize
	}
	if total < 0 {
		total = 0
	}
	return &Paginator{total: total, size: size}
}

// Total returns the number of rows being paged
func (p *Paginator) Total() int { return p.total }

// Shown returns how many rows have been handed out so far
func (p *Paginator) Shown() int { return p.next }

// Remaining returns how many rows have not been shown yet
func (p *Paginator) Remaining() int { return p.total - p.next }

// Done reports whether every row has been shown
func (p *Paginator) Done() bool { return p.Remaining() <= 0 }

// Advance returns the bounds [start, end) of the next page and moves past it.
// ok is false once every row has been shown.
func (p *Paginator) Advance() (start, end int, ok bool) {
	if p.Done() {
		return p.next, p.next, false
	}
	start = p.next
	end = min(start+p.size, p.total)
	p.next = end
	return start, end, true
}

// Prompt returns the question asked before the next page, or "" when done
func (p *Paginator) Prompt() string {
	remaining := p.Remaining()
	switch {
	case remaining <= 0:
		return ""
	case remaining < p.size:
		return fmt.Sprintf("There are only %d rows left. Would you like to view them?", remaining)
	case p.next == 0:
		return fmt.Sprintf("Would you like to view the first %d rows of individual trip data?", p.size)
	default:
		return fmt.Sprintf("Do you wish to view the next %d rows?", p.size)
	}
}

// =============================================================================
// Row pager TUI
// =============================================================================

type pagerModel struct {
	PageState
	title  string
	view   *models.Table
	pages  *Paginator
	specs  []ColumnSpec
	table  table.Model
	start  int
	end    int
	height int
}

func newPagerModel(view *models.Table, title string, pageSize int) pagerModel {
	pages := NewPaginator(view.Len(), pageSize)
	m := pagerModel{
		PageState: NewPageState(DefaultLayout()),
		title:     title,
		view:      view,
		pages:     pages,
		specs:     TripColumns(view.Schema),
		height:    pages.size,
	}
	m.table = InitTable(CalculateColumns(m.specs, m.Layout.TableWidth), nil, m.height)
	m.advance()
	return m
}

// advance loads the next page into the table
func (m *pagerModel) advance() bool {
	start, end, ok := m.pages.Advance()
	if !ok {
		return false
	}
	m.start, m.end = start, end

	rows := make([]table.Row, 0, end-start)
	for _, t := range m.view.Page(start, end-start) {
		rows = append(rows, TripRow(t, m.view.Schema))
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
	m.SetStatus(m.pages.Prompt())
	return true
}

func (m pagerModel) Init() tea.Cmd {
	return tea.WindowSize()
}

func (m pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if m.UpdateLayout(msg.Width, msg.Height) {
			m.table.SetColumns(CalculateColumns(m.specs, m.Layout.TableWidth))
		}
		return m, nil

	case tea.KeyMsg:
		if quit, cmd := HandleQuitKeys(msg.String()); quit {
			m.Quitting = true
			return m, cmd
		}
		switch msg.String() {
		case "y", " ", "enter", "right", "pgdown":
			if !m.advance() {
				m.Quitting = true
				return m, tea.Quit
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m pagerModel) View() string {
	if m.Quitting {
		return ""
	}

	info := "No rows match the current filters."
	if m.pages.Total() > 0 {
		info = fmt.Sprintf("Rows %s-%s of %s",
			humanize.Comma(int64(m.start+1)),
			humanize.Comma(int64(m.end)),
			humanize.Comma(int64(m.pages.Total())))
	}

	status := m.StatusMsg
	help := "y/enter: next page | ↑/↓: scroll | q: quit"
	if m.pages.Done() {
		status = "All rows shown."
		help = "q: quit"
	}

	return NewPageView(m.Layout).
		Title(m.title).
		Divider().
		QueryInfo(info).
		Table(m.table).
		Status(status).
		Help(help).
		Build()
}

// RunPager shows the view's trips pageSize rows at a time until the user
// quits or every row has been shown.
func RunPager(view *models.Table, title string, pageSize int) error {
	if view.Len() == 0 {
		PrintProgressLine("No rows to display.")
		return nil
	}

	p := tea.NewProgram(newPagerModel(view, title, pageSize), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("pager error: %w", err)
	}
	return nil
}
