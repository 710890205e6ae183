// Package loader reads a city's trip records into a models.Table, either from
// the city's CSV file or from the SQLite trip cache.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/thesavant42/bikeshare-ng/internal/models"
)

// Cache is the subset of the trip cache the loader needs
type Cache interface {
	CachedSource(city models.City) (models.SourceFile, bool, error)
	LoadTable(city models.City) (*models.Table, error)
	ImportTable(table *models.Table) error
}

// Source tells where a table was loaded from
type Source string

const (
	SourceCSV   Source = "csv"
	SourceCache Source = "cache"
)

// Loader loads city tables from a data directory with an optional cache
type Loader struct {
	dataDir string
	cache   Cache // nil disables caching
	logger  *log.Logger
}

// New creates a loader reading CSV files from dataDir.
// cache and logger may be nil.
func New(dataDir string, cache Cache, logger *log.Logger) *Loader {
	return &Loader{dataDir: dataDir, cache: cache, logger: logger}
}

// Path returns the CSV path for a city
func (l *Loader) Path(city models.City) string {
	return filepath.Join(l.dataDir, city.FileName())
}

// Load returns the city's table. A cached copy is used only when it was read
// from this loader's CSV file and the file's size and modification time are
// unchanged. Otherwise the CSV file is read and written through to the cache.
// Cache failures are logged and fall back to the CSV file.
func (l *Loader) Load(city models.City) (*models.Table, Source, error) {
	start := time.Now()

	if l.cache != nil {
		table, err := l.loadCached(city)
		if err != nil && l.logger != nil {
			l.logger.Warn("Cache read failed, using CSV", "city", city, "error", err)
		}
		if table != nil {
			l.logDone(city, SourceCache, table, start)
			return table, SourceCache, nil
		}
	}

	table, err := l.LoadCSV(city)
	if err != nil {
		return nil, "", err
	}

	if l.cache != nil {
		if err := l.cache.ImportTable(table); err != nil && l.logger != nil {
			l.logger.Warn("Failed to cache trips", "city", city, "error", err)
		}
	}

	l.logDone(city, SourceCSV, table, start)
	return table, SourceCSV, nil
}

// LoadCSV reads the city's CSV file, bypassing the cache
func (l *Loader) LoadCSV(city models.City) (*models.Table, error) {
	path := l.Path(city)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	table, err := ReadCSV(f, city)
	if err != nil {
		if l.logger != nil {
			l.logger.Error("Failed to parse trips", "path", path, "error", err)
		}
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	table.Source = sourceFile(path, info)
	return table, nil
}

// loadCached returns nil without error on a miss or a stale entry
func (l *Loader) loadCached(city models.City) (*models.Table, error) {
	path := l.Path(city)
	info, err := os.Stat(path)
	if err != nil {
		// LoadCSV reports the missing file
		return nil, nil
	}
	current := sourceFile(path, info)

	cached, ok, err := l.cache.CachedSource(city)
	if err != nil || !ok {
		return nil, err
	}
	if !cached.Matches(current) {
		if l.logger != nil {
			l.logger.Info("Cached trips are stale, re-reading CSV",
				"city", city, "cached", cached.Path, "path", current.Path)
		}
		return nil, nil
	}
	return l.cache.LoadTable(city)
}

func sourceFile(path string, info os.FileInfo) models.SourceFile {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return models.SourceFile{Path: path, Size: info.Size(), ModTime: info.ModTime()}
}

func (l *Loader) logDone(city models.City, src Source, table *models.Table, start time.Time) {
	if l.logger == nil {
		return
	}
	l.logger.Info("Loaded trips",
		"city", city,
		"source", src,
		"rows", table.Len(),
		"elapsed", time.Since(start))
}
