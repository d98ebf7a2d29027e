// Package audit provides recorders for the evaluation pipeline's audit
// collaborator: an in-memory trail and a sqlite-backed store. The pipeline
// only calls Record; everything else here is for callers inspecting or
// persisting the trail.
package audit

import (
	"sync"
	"time"
)

// Entry is one recorded pipeline stage.
type Entry struct {
	Stage  string         `json:"stage"`
	Input  map[string]any `json:"input,omitempty"`
	Output map[string]any `json:"output,omitempty"`
	At     time.Time      `json:"at"`
}

// Trail is an in-memory, append-only audit trail. Safe for concurrent use;
// batch row building records from multiple goroutines.
type Trail struct {
	mu      sync.Mutex
	entries []Entry
}

// NewTrail returns an empty trail.
func NewTrail() *Trail {
	return &Trail{}
}

// Record appends one stage entry.
func (t *Trail) Record(stage string, input, output map[string]any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, Entry{
		Stage:  stage,
		Input:  input,
		Output: output,
		At:     time.Now().UTC(),
	})
}

// Entries returns a snapshot of the trail in record order.
func (t *Trail) Entries() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of recorded entries.
func (t *Trail) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
