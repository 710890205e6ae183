package ui

// base_model.go provides common helpers for table-based Bubble Tea models.

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

// InitTable creates and configures a table with proper styling and dimensions.
// Use this instead of manually calling table.New() to ensure consistent setup.
func InitTable(columns []table.Column, rows []table.Row, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	ApplyTableStyles(&t)
	t.GotoTop()
	return t
}

// HandleQuitKeys returns true and Quit cmd for q/esc/ctrl+c keys
func HandleQuitKeys(key string) (bool, tea.Cmd) {
	switch key {
	case "q", "esc", "ctrl+c":
		return true, tea.Quit
	}
	return false, nil
}
