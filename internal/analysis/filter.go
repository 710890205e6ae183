// Package analysis filters a city's trip table and computes the descriptive
// statistics shown in the report.
package analysis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/thesavant42/bikeshare-ng/internal/models"
)

// ErrInvalidSelection is returned when a selection bypassed validation
var ErrInvalidSelection = errors.New("invalid selection")

// Filter returns a new table holding the trips that match the selection's
// month and day, along with the number of matching trips.
// The source table is not modified. Month and day constraints are AND-combined;
// AllMonths and AllDays (or an empty day) disable the respective constraint.
func Filter(table *models.Table, sel models.Selection) (*models.Table, int, error) {
	if !sel.Month.Valid() {
		return nil, 0, fmt.Errorf("%w: month %d outside january..june", ErrInvalidSelection, int(sel.Month))
	}
	if !sel.AllDaysSelected() && models.WeekdayIndex(sel.Day) < 0 {
		return nil, 0, fmt.Errorf("%w: day %q", ErrInvalidSelection, sel.Day)
	}

	view := &models.Table{}
	if table == nil {
		return view, 0, nil
	}
	view.City = table.City
	view.Schema = table.Schema

	filterMonth := sel.Month != models.AllMonths
	filterDay := !sel.AllDaysSelected()

	// Single pass, both constraints checked per trip
	trips := make([]models.Trip, 0, len(table.Trips))
	for _, t := range table.Trips {
		if filterMonth && int(t.Month) != int(sel.Month) {
			continue
		}
		if filterDay && !strings.EqualFold(t.DayOfWeek, sel.Day) {
			continue
		}
		trips = append(trips, t)
	}
	view.Trips = trips

	return view, len(trips), nil
}
