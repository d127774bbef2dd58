package engine

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// RunLogEvent is one JSONL record in a run log.
type RunLogEvent struct {
	Type      string    `json:"type"` // log, done
	Timestamp time.Time `json:"timestamp"`
	Script    string    `json:"script,omitempty"`
	Message   string    `json:"message"`
}

// RunLogWriter appends run events to a JSONL file, flushing per event so a
// crash mid-run loses at most the current line.
type RunLogWriter struct {
	file   *os.File
	writer *bufio.Writer
	enc    *json.Encoder
	script string
}

// NewRunLogWriter opens (appending) a JSONL run log for the named script.
func NewRunLogWriter(path, scriptName string) (*RunLogWriter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open run log: %w", err)
	}
	w := bufio.NewWriter(f)
	return &RunLogWriter{
		file:   f,
		writer: w,
		enc:    json.NewEncoder(w),
		script: scriptName,
	}, nil
}

// Write appends one event and flushes it to disk.
func (w *RunLogWriter) Write(eventType, message string) error {
	event := RunLogEvent{
		Type:      eventType,
		Timestamp: time.Now(),
		Script:    w.script,
		Message:   message,
	}
	if err := w.enc.Encode(event); err != nil {
		return fmt.Errorf("encode run log event: %w", err)
	}
	if err := w.writer.Flush(); err != nil {
		return fmt.Errorf("flush run log: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (w *RunLogWriter) Close() error {
	if err := w.writer.Flush(); err != nil {
		return err
	}
	return w.file.Close()
}
