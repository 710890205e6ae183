package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/thesavant42/bikeshare-ng/internal/models"
)

// ErrMissingColumn is returned when a required column is absent from the header
var ErrMissingColumn = errors.New("missing required column")

// Column headers used by the city CSV files
const (
	colStartTime    = "start time"
	colEndTime      = "end time"
	colTripDuration = "trip duration"
	colStartStation = "start station"
	colEndStation   = "end station"
	colUserType     = "user type"
	colGender       = "gender"
	colBirthYear    = "birth year"
	colUnnamedIndex = "unnamed: 0"
)

var requiredColumns = []string{colStartTime, colTripDuration, colStartStation, colEndStation}

// timestamp layouts accepted for start and end times
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	time.RFC3339,
	"2006-01-02 15:04",
}

// columnIndex maps normalized header names to their position
type columnIndex map[string]int

func newColumnIndex(header []string) columnIndex {
	idx := make(columnIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if key == "" {
			// pandas writes the row index under an empty header
			key = colUnnamedIndex
		}
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	return idx
}

func (c columnIndex) has(name string) bool {
	_, ok := c[name]
	return ok
}

func (c columnIndex) get(row []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// ReadCSV parses one city's trip file into a record table.
// Required columns and timestamps are validated here; optional columns that are
// absent from the header are recorded in the table schema.
func ReadCSV(r io.Reader, city models.City) (*models.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("failed to read CSV header: empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	cols := newColumnIndex(header)

	for _, name := range requiredColumns {
		if !cols.has(name) {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}

	schema := models.Schema{
		HasEndTime:   cols.has(colEndTime),
		HasUserType:  cols.has(colUserType),
		HasGender:    cols.has(colGender),
		HasBirthYear: cols.has(colBirthYear),
	}
	hasIndex := cols.has(colUnnamedIndex)

	var trips []models.Trip
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		trip, err := parseTrip(row, cols, schema)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		trip.RecordID = int64(len(trips))
		if hasIndex {
			if id, err := strconv.ParseInt(cols.get(row, colUnnamedIndex), 10, 64); err == nil {
				trip.RecordID = id
			}
		}
		trips = append(trips, trip)
	}

	return models.NewTable(city, schema, trips), nil
}

func parseTrip(row []string, cols columnIndex, schema models.Schema) (models.Trip, error) {
	var trip models.Trip

	start, err := parseTimestamp(cols.get(row, colStartTime))
	if err != nil {
		return trip, fmt.Errorf("invalid start time: %w", err)
	}
	trip.StartTime = start

	if schema.HasEndTime {
		if raw := cols.get(row, colEndTime); raw != "" {
			end, err := parseTimestamp(raw)
			if err != nil {
				return trip, fmt.Errorf("invalid end time: %w", err)
			}
			trip.EndTime = end
		}
	}

	duration, err := strconv.ParseFloat(cols.get(row, colTripDuration), 64)
	if err != nil || duration < 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return trip, fmt.Errorf("invalid trip duration %q", cols.get(row, colTripDuration))
	}
	trip.TripDuration = duration

	trip.StartStation = cols.get(row, colStartStation)
	trip.EndStation = cols.get(row, colEndStation)
	trip.UserType = cols.get(row, colUserType)
	trip.Gender = cols.get(row, colGender)
	if schema.HasBirthYear {
		trip.BirthYear = parseBirthYear(cols.get(row, colBirthYear))
	}

	return trip, nil
}

// parseTimestamp tries each accepted layout in turn
func parseTimestamp(ts string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse timestamp: %q", ts)
}

// parseBirthYear reads values such as "1989.0"; blanks and garbage are missing
func parseBirthYear(raw string) models.NullInt {
	if raw == "" {
		return models.NullInt{}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return models.NullInt{}
	}
	return models.NullInt{Int: int(f), Valid: true}
}
