package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/runoshun/pcr-triage/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
		wantErr  bool
	}{
		{"trace", LevelTrace, false},
		{"debug", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"", slog.LevelInfo, false}, // default
		{"warn", slog.LevelInfo, true},
		{"TRACE", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidLogLevel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("shown", "count", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=INFO msg=shown count=3")
	assert.NotContains(t, out, "time=")
}

func TestNew_TraceLevelName(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelTrace)

	logger.Log(context.Background(), LevelTrace, "command line")

	assert.Contains(t, buf.String(), "level=TRACE msg=\"command line\"")
}
