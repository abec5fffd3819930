package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityFiltering(t *testing.T) {
	tests := []struct {
		level   string
		enabled []slog.Level
		muted   []slog.Level
	}{
		{Trace, []slog.Level{LevelTrace, slog.LevelDebug, slog.LevelError}, nil},
		{Debug, []slog.Level{slog.LevelDebug, slog.LevelInfo}, []slog.Level{LevelTrace}},
		{Info, []slog.Level{slog.LevelInfo, slog.LevelWarn}, []slog.Level{slog.LevelDebug}},
		{Warning, []slog.Level{slog.LevelWarn, slog.LevelError}, []slog.Level{slog.LevelInfo}},
		{Error, []slog.Level{slog.LevelError}, []slog.Level{slog.LevelWarn}},
		{Off, nil, []slog.Level{slog.LevelError}},
		{"", []slog.Level{slog.LevelInfo}, []slog.Level{slog.LevelDebug}},
		{"debug", []slog.Level{slog.LevelDebug}, []slog.Level{LevelTrace}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l, err := NewWithWriter(Config{Level: tt.level}, &bytes.Buffer{}, nil)
			require.NoError(t, err)

			for _, lv := range tt.enabled {
				assert.True(t, l.Enabled(context.Background(), lv), "level %v should be enabled", lv)
			}
			for _, lv := range tt.muted {
				assert.False(t, l.Enabled(context.Background(), lv), "level %v should be muted", lv)
			}
		})
	}
}

func TestUnknownSeverity(t *testing.T) {
	_, err := NewWithWriter(Config{Level: "LOUD"}, &bytes.Buffer{}, nil)
	assert.ErrorContains(t, err, "unknown severity")
}

func TestUnknownFormat(t *testing.T) {
	_, err := NewWithWriter(Config{Format: "xml"}, &bytes.Buffer{}, nil)
	assert.ErrorContains(t, err, "unsupported format")
}

func TestTextFormatLevelNames(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithWriter(Config{Level: Trace, Format: "text"}, &buf, nil)
	require.NoError(t, err)

	l.Log(context.Background(), LevelTrace, "deep")
	l.Warn("careful", "worker", "worker-03")

	out := buf.String()
	assert.Contains(t, out, "level=TRACE msg=deep")
	assert.Contains(t, out, "level=WARNING msg=careful worker=worker-03")
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithWriter(Config{Level: Info, Format: "json"}, &buf, nil)
	require.NoError(t, err)

	l.Info("task finished", "worker", "worker-00", "elapsed_ms", 12)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "INFO", rec["level"])
	assert.Equal(t, "task finished", rec["msg"])
	assert.Equal(t, "worker-00", rec["worker"])
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithWriter(Config{Level: Error}, &buf, nil)
	require.NoError(t, err)

	l.Info("hidden")
	require.NoError(t, l.SetLevel(Info))
	assert.Equal(t, slog.LevelInfo, l.Level())
	l.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Error(t, l.SetLevel("nope"))
	assert.Equal(t, slog.LevelInfo, l.Level())
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskpool.log")
	l, err := New(Config{Level: Info, FilePath: path, MaxSizeMB: 1, MaxBackups: 2})
	require.NoError(t, err)

	l.Info("pool started", "workers", 4)
	require.NoError(t, l.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(content), `msg="pool started" workers=4`), string(content))
}

func TestCloseWithoutFile(t *testing.T) {
	l, err := NewWithWriter(Config{}, &bytes.Buffer{}, nil)
	require.NoError(t, err)
	assert.NoError(t, l.Close())
}
