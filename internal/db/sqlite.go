package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/thesavant42/bikeshare-ng/internal/models"

	_ "modernc.org/sqlite"
)

// ErrCityNotCached is returned by LoadTable when a city was never imported
var ErrCityNotCached = errors.New("city not cached")

const timestampLayout = "2006-01-02 15:04:05"

// DB wraps the SQLite trip cache connection
type DB struct {
	conn *sql.DB
}

// CityInfo describes one imported city
type CityInfo struct {
	City       models.City
	RowCount   int
	SourcePath string
	ImportedAt time.Time
}

// New creates a new database connection and initializes the schema
func New(dbPath string) (*DB, error) {
	// Ensure the directory exists
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := initSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return &DB{conn: conn}, nil
}

// initSchema creates the cache tables, rebuilding them when the file was
// written by an older cache layout
func initSchema(conn *sql.DB) error {
	var version int
	if err := conn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read cache version: %w", err)
	}

	if version != cacheVersion {
		if _, err := conn.Exec(dropTables); err != nil {
			return fmt.Errorf("failed to drop stale cache: %w", err)
		}
	}

	if _, err := conn.Exec(createTripsTable); err != nil {
		return fmt.Errorf("failed to create trips schema: %w", err)
	}

	if _, err := conn.Exec(createCitiesTable); err != nil {
		return fmt.Errorf("failed to create cities schema: %w", err)
	}

	if _, err := conn.Exec(fmt.Sprintf("PRAGMA user_version = %d", cacheVersion)); err != nil {
		return fmt.Errorf("failed to set cache version: %w", err)
	}
	return nil
}

// NewWithConn wraps an already opened connection without touching the schema
func NewWithConn(conn *sql.DB) *DB {
	return &DB{conn: conn}
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// ImportTable replaces the cached trips of the table's city
func (db *DB) ImportTable(table *models.Table) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	city := string(table.City)
	if _, err := tx.Exec(deleteCityTrips, city); err != nil {
		return fmt.Errorf("failed to clear trips for %s: %w", city, err)
	}

	stmt, err := tx.Prepare(insertTrip)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, t := range table.Trips {
		_, err := stmt.Exec(
			city,
			i,
			t.RecordID,
			t.StartTime.Format(timestampLayout),
			nullTime(t.EndTime),
			t.TripDuration,
			t.StartStation,
			t.EndStation,
			nullString(t.UserType),
			nullString(t.Gender),
			nullInt(t.BirthYear),
		)
		if err != nil {
			return fmt.Errorf("failed to insert trip %d: %w", t.RecordID, err)
		}
	}

	s, src := table.Schema, table.Source
	_, err = tx.Exec(upsertCity, city,
		s.HasEndTime, s.HasUserType, s.HasGender, s.HasBirthYear, len(table.Trips),
		src.Path, src.Size, unixNano(src.ModTime))
	if err != nil {
		return fmt.Errorf("failed to record city %s: %w", city, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// CachedSource returns the source file recorded for a cached city.
// ok is false when the city was never imported.
func (db *DB) CachedSource(city models.City) (src models.SourceFile, ok bool, err error) {
	var mtime int64
	err = db.conn.QueryRow(selectCitySource, string(city)).Scan(&src.Path, &src.Size, &mtime)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SourceFile{}, false, nil
	}
	if err != nil {
		return models.SourceFile{}, false, fmt.Errorf("failed to check cached city: %w", err)
	}
	src.ModTime = fromUnixNano(mtime)
	return src, true, nil
}

// LoadTable reads a city's cached trips back into a record table, in import order
func (db *DB) LoadTable(city models.City) (*models.Table, error) {
	var schema models.Schema
	var src models.SourceFile
	var count int
	var mtime int64
	err := db.conn.QueryRow(selectCity, string(city)).Scan(
		&schema.HasEndTime, &schema.HasUserType, &schema.HasGender, &schema.HasBirthYear, &count,
		&src.Path, &src.Size, &mtime)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrCityNotCached, city)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query city: %w", err)
	}

	rows, err := db.conn.Query(selectCityTrips, string(city))
	if err != nil {
		return nil, fmt.Errorf("failed to query trips: %w", err)
	}
	defer rows.Close()

	trips := make([]models.Trip, 0, count)
	for rows.Next() {
		var t models.Trip
		var start string
		var end, userType, gender sql.NullString
		var birthYear sql.NullInt64
		if err := rows.Scan(&t.RecordID, &start, &end, &t.TripDuration,
			&t.StartStation, &t.EndStation, &userType, &gender, &birthYear); err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}

		t.StartTime, err = parseTimestamp(start)
		if err != nil {
			return nil, fmt.Errorf("trip %d: %w", t.RecordID, err)
		}
		if end.Valid {
			t.EndTime, _ = parseTimestamp(end.String)
		}
		t.UserType = userType.String
		t.Gender = gender.String
		if birthYear.Valid {
			t.BirthYear = models.NullInt{Int: int(birthYear.Int64), Valid: true}
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trips: %w", err)
	}

	table := models.NewTable(city, schema, trips)
	src.ModTime = fromUnixNano(mtime)
	table.Source = src
	return table, nil
}

// ListCities returns every imported city
func (db *DB) ListCities() ([]CityInfo, error) {
	rows, err := db.conn.Query(selectCities)
	if err != nil {
		return nil, fmt.Errorf("failed to query cities: %w", err)
	}
	defer rows.Close()

	var cities []CityInfo
	for rows.Next() {
		var c CityInfo
		var name, importedAt string
		if err := rows.Scan(&name, &c.RowCount, &c.SourcePath, &importedAt); err != nil {
			return nil, fmt.Errorf("failed to scan city: %w", err)
		}
		c.City = models.City(name)
		// Parse the timestamp
		c.ImportedAt, _ = parseTimestamp(importedAt)
		cities = append(cities, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cities: %w", err)
	}
	return cities, nil
}

func unixNano(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromUnixNano(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n)
}

func nullTime(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(timestampLayout), Valid: true}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(n models.NullInt) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(n.Int), Valid: n.Valid}
}

// parseTimestamp parses SQLite timestamp formats
func parseTimestamp(ts string) (time.Time, error) {
	formats := []string{
		timestampLayout,
		"2006-01-02T15:04:05Z",
		time.RFC3339,
	}
	for _, format := range formats {
		if t, err := time.Parse(format, ts); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse timestamp: %s", ts)
}
