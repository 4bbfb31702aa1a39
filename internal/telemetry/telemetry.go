// Package telemetry writes structured JSONL events describing orchestration
// activity. Events carry sizes, timings and identifiers, never raw payloads.
package telemetry

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultDir is where events.jsonl is written when no directory is given.
const DefaultDir = ".agent"

// EventsFile is the file name events are appended to.
const EventsFile = "events.jsonl"

// Sink appends events to <dir>/events.jsonl. A nil or disabled Sink drops
// every event, so callers never need to check.
type Sink struct {
	dir     string
	enabled bool
	errOut  io.Writer

	mu sync.Mutex
}

func New(dir string, enabled bool) *Sink {
	if dir == "" {
		dir = DefaultDir
	}
	return &Sink{dir: dir, enabled: enabled, errOut: os.Stderr}
}

// Enabled reports whether Emit writes anything.
func (s *Sink) Enabled() bool { return s != nil && s.enabled }

// Path returns the events file location.
func (s *Sink) Path() string {
	if s == nil {
		return ""
	}
	return filepath.Join(s.dir, EventsFile)
}

// Emit writes one JSON line. fields is copied and augmented with the
// RFC3339Nano time and the event name. Write failures are reported on stderr
// and otherwise ignored.
func (s *Sink) Emit(name string, fields map[string]any) {
	if !s.Enabled() {
		return
	}

	m := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		m[k] = v
	}
	m["time"] = time.Now().UTC().Format(time.RFC3339Nano)
	m["event"] = name

	b, err := json.Marshal(m)
	if err != nil {
		fmt.Fprintf(s.errOut, "telemetry: marshal: %v\n", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		fmt.Fprintf(s.errOut, "telemetry: mkdir %s: %v\n", s.dir, err)
		return
	}
	path := s.Path()
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(s.errOut, "telemetry: open %s: %v\n", path, err)
		return
	}
	defer f.Close()

	if _, err := f.Write(append(b, '\n')); err != nil {
		fmt.Fprintf(s.errOut, "telemetry: write %s: %v\n", path, err)
	}
}
