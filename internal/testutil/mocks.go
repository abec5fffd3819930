package testutil

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
)

// SyncBuffer is an io.Writer safe for concurrent use, for capturing log
// output produced by several goroutines.
type SyncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// Write implements io.Writer.
func (sb *SyncBuffer) Write(p []byte) (int, error) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.buf.Write(p)
}

// String returns the current buffer contents.
func (sb *SyncBuffer) String() string {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.buf.String()
}

// Lines returns the non-empty lines written so far.
func (sb *SyncBuffer) Lines() []string {
	var lines []string
	for _, l := range strings.Split(sb.String(), "\n") {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// Count returns how many lines contain substr.
func (sb *SyncBuffer) Count(substr string) int {
	n := 0
	for _, l := range sb.Lines() {
		if strings.Contains(l, substr) {
			n++
		}
	}
	return n
}

// NewCaptureLogger returns a debug-level text logger writing into a fresh
// SyncBuffer.
func NewCaptureLogger() (*slog.Logger, *SyncBuffer) {
	sb := &SyncBuffer{}
	return slog.New(slog.NewTextHandler(sb, &slog.HandlerOptions{Level: slog.LevelDebug})), sb
}
