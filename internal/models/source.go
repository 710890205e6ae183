package models

import "time"

// SourceFile identifies the CSV file a table was read from
type SourceFile struct {
	Path    string // absolute
	Size    int64
	ModTime time.Time
}

// Matches reports whether two descriptions refer to the same unchanged file
func (s SourceFile) Matches(other SourceFile) bool {
	return s.Path == other.Path &&
		s.Size == other.Size &&
		s.ModTime.Equal(other.ModTime)
}
