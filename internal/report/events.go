// Package report implements ports.ProgressReporter: a JSONL sink for
// the four ingestion events (start/success/error/finish) consumed by
// an external observer (CLI, UI shell, log aggregator).
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EventType names one of the four events on the wire, matching
// spec.md §6's "library:import:*" naming.
type EventType string

const (
	EventStart   EventType = "library:import:start"
	EventSuccess EventType = "library:import:success"
	EventError   EventType = "library:import:error"
	EventFinish  EventType = "library:import:finish"
)

// Event is one line of the JSONL progress log.
type Event struct {
	Timestamp time.Time `json:"ts"`
	Event     EventType `json:"event"`
	Total     int       `json:"total,omitempty"`
	Path      string    `json:"path,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// JSONLReporter implements ports.ProgressReporter by appending one
// JSON object per event to a file, one per line. Safe for concurrent
// use: OnSuccess/OnError fire from every worker goroutine in a group.
type JSONLReporter struct {
	file    *os.File
	encoder *json.Encoder
	mu      sync.Mutex
	path    string
}

// NewJSONLReporter creates the output directory if needed and opens a
// fresh, timestamped JSONL file under it.
func NewJSONLReporter(outputDir string) (*JSONLReporter, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating progress log directory: %w", err)
	}

	filename := fmt.Sprintf("import-%s.jsonl", time.Now().Format("20060102-150405"))
	path := filepath.Join(outputDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating progress log: %w", err)
	}

	return &JSONLReporter{file: file, encoder: json.NewEncoder(file), path: path}, nil
}

// Path returns the path to the underlying JSONL file.
func (r *JSONLReporter) Path() string {
	if r == nil {
		return ""
	}
	return r.path
}

// emit writes one event, swallowing encode/IO failures: per spec.md
// §6, "emission failures are swallowed" — a broken progress sink must
// never abort ingestion.
func (r *JSONLReporter) emit(event Event) {
	if r == nil || r.file == nil {
		return
	}

	event.Timestamp = time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()
	_ = r.encoder.Encode(event)
}

// Start implements ports.ProgressReporter.
func (r *JSONLReporter) Start(total int) {
	r.emit(Event{Event: EventStart, Total: total})
}

// OnSuccess implements ports.ProgressReporter.
func (r *JSONLReporter) OnSuccess(path string) {
	r.emit(Event{Event: EventSuccess, Path: path})
}

// OnError implements ports.ProgressReporter.
func (r *JSONLReporter) OnError(path string, errMsg string) {
	r.emit(Event{Event: EventError, Path: path, Error: errMsg})
}

// Finish implements ports.ProgressReporter.
func (r *JSONLReporter) Finish() {
	r.emit(Event{Event: EventFinish})
}

// Close closes the underlying file.
func (r *JSONLReporter) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.file.Close()
}
