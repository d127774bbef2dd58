// Package status keeps a bounded in-memory log of status updates and can
// export it to a file.
package status

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// Level classifies a log entry.
type Level string

const (
	LevelInfo    Level = "INFO"
	LevelWarning Level = "WARNING"
	LevelError   Level = "ERROR"
)

// Entry is a single timestamped log line.
type Entry struct {
	Timestamp time.Time
	Level     Level
	Message   string
}

func (e Entry) String() string {
	return fmt.Sprintf("[%s] %s: %s", e.Timestamp.Format("15:04:05"), e.Level, e.Message)
}

// Logger records status updates with a bounded history. Safe for use from
// multiple goroutines — engine callbacks log from their worker.
type Logger struct {
	mu      sync.Mutex
	entries []Entry
	max     int
	current string
}

// NewLogger creates a logger keeping at most max entries; max <= 0 selects
// the default of 100.
func NewLogger(max int) *Logger {
	if max <= 0 {
		max = 100
	}
	return &Logger{max: max, current: "Ready"}
}

// Info records an informational message.
func (l *Logger) Info(msg string) { l.add(LevelInfo, msg) }

// Warning records a warning.
func (l *Logger) Warning(msg string) { l.add(LevelWarning, msg) }

// Error records an error.
func (l *Logger) Error(msg string) { l.add(LevelError, msg) }

// UpdateStatus sets the current status line and records it as info.
func (l *Logger) UpdateStatus(status string) {
	l.mu.Lock()
	l.current = status
	l.mu.Unlock()
	l.Info(status)
}

// Current returns the latest status line.
func (l *Logger) Current() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}

// Recent returns up to count of the most recent entries, oldest first.
func (l *Logger) Recent(count int) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	if count >= len(l.entries) {
		count = len(l.entries)
	}
	out := make([]Entry, count)
	copy(out, l.entries[len(l.entries)-count:])
	return out
}

// All returns a copy of the full history.
func (l *Logger) All() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Clear drops the history.
func (l *Logger) Clear() {
	l.mu.Lock()
	l.entries = nil
	l.mu.Unlock()
	l.Info("Log history cleared")
}

func (l *Logger) add(level Level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{Timestamp: time.Now(), Level: level, Message: msg})
	if len(l.entries) > l.max {
		l.entries = l.entries[len(l.entries)-l.max:]
	}
}

// ExportFile writes the full history to a text file.
func (l *Logger) ExportFile(path string) error {
	var b strings.Builder
	b.WriteString("multiclick - Log Export\n")
	fmt.Fprintf(&b, "Generated: %s\n", time.Now().Format(time.RFC3339))
	b.WriteString(strings.Repeat("=", 50) + "\n\n")
	for _, e := range l.All() {
		fmt.Fprintf(&b, "[%s] %s: %s\n", e.Timestamp.Format("2006-01-02 15:04:05"), e.Level, e.Message)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("export log: %w", err)
	}
	return nil
}
