package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "bikeshare.log")

	logger := New(path, "debug")
	logger.Debug("Loaded trips", "city", "chicago")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "Loaded trips") {
		t.Errorf("log file = %q, want message", data)
	}
}

func TestNew_Level(t *testing.T) {
	tests := []struct {
		level string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"warn", log.WarnLevel},
		{"nonsense", log.InfoLevel},
		{"", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := New("", tt.level).GetLevel(); got != tt.want {
				t.Errorf("GetLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}
