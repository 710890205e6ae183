package analysis

import (
	"cmp"
	"strings"
	"time"

	"github.com/thesavant42/bikeshare-ng/internal/models"
)

// TimeStats holds the most frequent times of travel
type TimeStats struct {
	Month Mode[time.Month]
	Day   Mode[string]
	Hour  Mode[int]
}

// StationStats holds the most popular stations and route
type StationStats struct {
	Start Mode[string]
	End   Mode[string]
	Route Mode[string] // key is "start > end", counted per trip
}

// DurationStats holds trip duration aggregates in seconds.
// Mean is truncated toward zero and is 0 for an empty view.
type DurationStats struct {
	Trips int
	Total float64
	Mean  int64
}

// FieldStatus describes how much of an optional column could be reported
type FieldStatus int

const (
	// FieldUnavailable means the column is absent from the dataset
	FieldUnavailable FieldStatus = iota
	// FieldNoData means the column exists but every value is missing
	FieldNoData
	// FieldAvailable means at least one value is present
	FieldAvailable
)

func (s FieldStatus) String() string {
	switch s {
	case FieldUnavailable:
		return "unavailable"
	case FieldNoData:
		return "no data"
	case FieldAvailable:
		return "available"
	default:
		return "unknown"
	}
}

// CategoryStats is the distribution of a categorical user column
type CategoryStats struct {
	Status  FieldStatus
	Missing int
	Counts  []Count[string] // highest count first
}

// BirthYearStats summarises the birth year column
type BirthYearStats struct {
	Status     FieldStatus
	Missing    int
	Earliest   int
	MostRecent int
	MostCommon Mode[int]
}

// UserStats holds the demographics of the riders in a view
type UserStats struct {
	UserType  CategoryStats
	Gender    CategoryStats
	BirthYear BirthYearStats
}

func compareDay(a, b string) int {
	return cmp.Compare(models.WeekdayIndex(a), models.WeekdayIndex(b))
}

// TimeStatsOf computes the mode of month, day of week and start hour.
// Ties are broken by the earliest month, day (Monday first) or hour.
func TimeStatsOf(view *models.Table) TimeStats {
	months := newCounter[time.Month]()
	days := newCounter[string]()
	hours := newCounter[int]()
	for _, t := range tripsOf(view) {
		months.add(t.Month)
		days.add(t.DayOfWeek)
		hours.add(t.Hour)
	}
	return TimeStats{
		Month: months.mode(cmp.Compare[time.Month]),
		Day:   days.mode(compareDay),
		Hour:  hours.mode(cmp.Compare[int]),
	}
}

// StationStatsOf computes the most common start station, end station and route.
// The route is counted on the per-trip pair, so it need not join the two most
// common stations. Ties go to the lexically smallest name.
func StationStatsOf(view *models.Table) StationStats {
	starts := newCounter[string]()
	ends := newCounter[string]()
	routes := newCounter[string]()
	for _, t := range tripsOf(view) {
		starts.add(t.StartStation)
		ends.add(t.EndStation)
		routes.add(t.Route())
	}
	return StationStats{
		Start: starts.mode(strings.Compare),
		End:   ends.mode(strings.Compare),
		Route: routes.mode(strings.Compare),
	}
}

// DurationStatsOf sums trip durations and computes the truncated mean
func DurationStatsOf(view *models.Table) DurationStats {
	trips := tripsOf(view)
	var total float64
	for _, t := range trips {
		total += t.TripDuration
	}
	stats := DurationStats{Trips: len(trips), Total: total}
	if len(trips) > 0 {
		stats.Mean = int64(total / float64(len(trips)))
	}
	return stats
}

// UserStatsOf reports user type, gender and birth year independently.
// A column missing from the schema is FieldUnavailable without touching the others.
func UserStatsOf(view *models.Table) UserStats {
	var schema models.Schema
	if view != nil {
		schema = view.Schema
	}
	trips := tripsOf(view)

	stats := UserStats{
		UserType:  CategoryStats{Status: FieldUnavailable},
		Gender:    CategoryStats{Status: FieldUnavailable},
		BirthYear: BirthYearStats{Status: FieldUnavailable},
	}
	if schema.HasUserType {
		stats.UserType = categoryStats(trips, func(t models.Trip) string { return t.UserType })
	}
	if schema.HasGender {
		stats.Gender = categoryStats(trips, func(t models.Trip) string { return t.Gender })
	}
	if schema.HasBirthYear {
		stats.BirthYear = birthYearStats(trips)
	}
	return stats
}

func categoryStats(trips []models.Trip, field func(models.Trip) string) CategoryStats {
	values := newCounter[string]()
	var missing int
	for _, t := range trips {
		v := strings.TrimSpace(field(t))
		if v == "" {
			missing++
			continue
		}
		values.add(v)
	}

	stats := CategoryStats{Status: FieldNoData, Missing: missing}
	if len(values.counts) > 0 {
		stats.Status = FieldAvailable
		stats.Counts = values.sorted(strings.Compare)
	}
	return stats
}

func birthYearStats(trips []models.Trip) BirthYearStats {
	years := newCounter[int]()
	stats := BirthYearStats{Status: FieldNoData}
	first := true
	for _, t := range trips {
		if !t.BirthYear.Valid {
			stats.Missing++
			continue
		}
		y := t.BirthYear.Int
		years.add(y)
		if first || y < stats.Earliest {
			stats.Earliest = y
		}
		if first || y > stats.MostRecent {
			stats.MostRecent = y
		}
		first = false
	}
	if first {
		return stats
	}
	stats.Status = FieldAvailable
	stats.MostCommon = years.mode(cmp.Compare[int])
	return stats
}

func tripsOf(view *models.Table) []models.Trip {
	if view == nil {
		return nil
	}
	return view.Trips
}
