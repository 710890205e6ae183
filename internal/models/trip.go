package models

import "time"

// Trip is one row of a city's trip records
type Trip struct {
	RecordID     int64     `json:"record_id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`      // zero when the source row has no end time
	TripDuration float64   `json:"trip_duration"` // seconds
	StartStation string    `json:"start_station"`
	EndStation   string    `json:"end_station"`
	UserType     string    `json:"user_type,omitempty"` // "" means missing
	Gender       string    `json:"gender,omitempty"`    // "" means missing
	BirthYear    NullInt   `json:"birth_year"`

	// Derived from StartTime once, at load
	Month     time.Month `json:"month"`
	DayOfWeek string     `json:"day_of_week"`
	Hour      int        `json:"hour"`
}

// NullInt is an integer that may be missing
type NullInt struct {
	Int   int
	Valid bool
}

// Derive fills the temporal fields from StartTime
func (t *Trip) Derive() {
	t.Month = t.StartTime.Month()
	t.DayOfWeek = t.StartTime.Weekday().String()
	t.Hour = t.StartTime.Hour()
}

// Route returns the combined start/end key used for route popularity
func (t Trip) Route() string {
	return t.StartStation + RouteSeparator + t.EndStation
}

// RouteSeparator joins the start and end station of a route
const RouteSeparator = " > "

// Schema records which optional columns a city's dataset carries.
// A column that is absent is different from a column whose values are all missing.
type Schema struct {
	HasEndTime   bool `json:"has_end_time"`
	HasUserType  bool `json:"has_user_type"`
	HasGender    bool `json:"has_gender"`
	HasBirthYear bool `json:"has_birth_year"`
}

// Table is the in-memory record table for one city
type Table struct {
	City   City
	Schema Schema
	Trips  []Trip
	Source SourceFile // zero for tables not read from a file
}

// NewTable creates a table and derives temporal fields for every trip
func NewTable(city City, schema Schema, trips []Trip) *Table {
	for i := range trips {
		trips[i].Derive()
	}
	return &Table{City: city, Schema: schema, Trips: trips}
}

// Len returns the number of trips in the table
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Trips)
}

// DefaultPageSize is the number of raw rows shown per page
const DefaultPageSize = 5

// Page returns trips in [start, start+size), clamped to the table bounds
func (t *Table) Page(start, size int) []Trip {
	n := t.Len()
	if start < 0 {
		start = 0
	}
	if start >= n || size <= 0 {
		return nil
	}
	end := start + size
	if end > n {
		end = n
	}
	return t.Trips[start:end]
}
