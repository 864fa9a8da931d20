package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSetupWithWriter(t *testing.T) {
	tests := []struct {
		verbose bool
		level   zerolog.Level
		debug   bool
	}{
		{false, zerolog.InfoLevel, false},
		{true, zerolog.DebugLevel, true},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		logger := SetupWithWriter(tt.verbose, &buf)

		if got := logger.GetLevel(); got != tt.level {
			t.Errorf("verbose %v: level = %v, want %v", tt.verbose, got, tt.level)
		}

		logger.Debug().Str("path", "song.mp3").Msg("opened")
		if got := strings.Contains(buf.String(), "path=song.mp3"); got != tt.debug {
			t.Errorf("verbose %v: debug line written = %v, want %v (%q)", tt.verbose, got, tt.debug, buf.String())
		}
	}
}
