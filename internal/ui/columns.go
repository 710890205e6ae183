package ui

// columns.go builds bubbles/table columns and rows for raw trip data.
// Use ColumnSpec and CalculateColumns() instead of duplicating width math.

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/thesavant42/bikeshare-ng/internal/models"
)

// ColumnSpec defines a table column with flexible or fixed width.
// Use FlexRatio for columns that should expand/contract with terminal width.
// Use FixedWidth for columns that should maintain constant width.
type ColumnSpec struct {
	Title      string
	MinWidth   int // Minimum width (0 = no minimum)
	FixedWidth int // If > 0, use this exact width (ignores FlexRatio)
	FlexRatio  int // Relative ratio for flexible columns (0 = fixed-only)
}

// CalculateColumns computes column widths from specs.
// Flexible columns split remaining space by ratio after fixed columns are allocated.
func CalculateColumns(specs []ColumnSpec, totalWidth int) []table.Column {
	if totalWidth < 50 {
		totalWidth = 50
	}

	// bubbles/table pads every cell by one on each side
	totalWidth -= 2 * len(specs)

	fixedTotal := 0
	flexTotal := 0
	for _, s := range specs {
		if s.FixedWidth > 0 {
			fixedTotal += s.FixedWidth
		} else {
			flexTotal += s.FlexRatio
		}
	}

	remaining := totalWidth - fixedTotal
	if remaining < 0 {
		remaining = 0
	}

	columns := make([]table.Column, len(specs))
	for i, s := range specs {
		var width int
		if s.FixedWidth > 0 {
			width = s.FixedWidth
		} else if flexTotal > 0 {
			width = remaining * s.FlexRatio / flexTotal
		}

		if s.MinWidth > 0 && width < s.MinWidth {
			width = s.MinWidth
		}

		columns[i] = table.Column{Title: s.Title, Width: width}
	}

	return columns
}

const timeColumnWidth = 19 // "2006-01-02 15:04:05"

// TripColumns returns the raw data columns for a dataset. Optional columns
// appear only when the dataset carries them.
func TripColumns(schema models.Schema) []ColumnSpec {
	specs := []ColumnSpec{
		{Title: "Record ID", FixedWidth: 9},
		{Title: "Start Time", FixedWidth: timeColumnWidth},
	}
	if schema.HasEndTime {
		specs = append(specs, ColumnSpec{Title: "End Time", FixedWidth: timeColumnWidth})
	}
	specs = append(specs,
		ColumnSpec{Title: "Trip Duration", FixedWidth: 13},
		ColumnSpec{Title: "Start Station", FlexRatio: 50, MinWidth: 16},
		ColumnSpec{Title: "End Station", FlexRatio: 50, MinWidth: 16},
	)
	if schema.HasUserType {
		specs = append(specs, ColumnSpec{Title: "User Type", FixedWidth: 10})
	}
	if schema.HasGender {
		specs = append(specs, ColumnSpec{Title: "Gender", FixedWidth: 6})
	}
	if schema.HasBirthYear {
		specs = append(specs, ColumnSpec{Title: "Birth Year", FixedWidth: 10})
	}
	return specs
}

// TripRow formats one trip in the same column order as TripColumns
func TripRow(t models.Trip, schema models.Schema) table.Row {
	row := table.Row{
		strconv.FormatInt(t.RecordID, 10),
		t.StartTime.Format(timeLayout),
	}
	if schema.HasEndTime {
		row = append(row, formatEndTime(t))
	}
	row = append(row,
		strconv.FormatFloat(t.TripDuration, 'f', -1, 64),
		t.StartStation,
		t.EndStation,
	)
	if schema.HasUserType {
		row = append(row, orMissing(t.UserType))
	}
	if schema.HasGender {
		row = append(row, orMissing(t.Gender))
	}
	if schema.HasBirthYear {
		year := missingValue
		if t.BirthYear.Valid {
			year = strconv.Itoa(t.BirthYear.Int)
		}
		row = append(row, year)
	}
	return row
}

const (
	timeLayout   = "2006-01-02 15:04:05"
	missingValue = "-"
)

func formatEndTime(t models.Trip) string {
	if t.EndTime.IsZero() {
		return missingValue
	}
	return t.EndTime.Format(timeLayout)
}

func orMissing(s string) string {
	if s == "" {
		return missingValue
	}
	return s
}
