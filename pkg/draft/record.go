package draft

import (
	"context"
	"time"
)

// Version identifies the persisted draft format.
const Version = "1.0"

// DefaultTTL is how long a saved draft stays loadable.
const DefaultTTL = 7 * 24 * time.Hour

// Record is the persisted snapshot of wizard progress.
type Record struct {
	SessionID   string            `json:"sessionId"`
	SavedAt     int64             `json:"savedAt"` // epoch milliseconds
	FormData    map[string]string `json:"formData"`
	CurrentStep int               `json:"currentStep"`
	Version     string            `json:"version"`
}

// wellFormed reports whether the record carries the minimum required shape.
func (r Record) wellFormed() bool {
	return r.FormData != nil && r.CurrentStep >= 1
}

// age computes how long ago the record was saved.
func (r Record) age(now time.Time) time.Duration {
	return now.Sub(time.UnixMilli(r.SavedAt))
}

// clone deep-copies the record so callers cannot mutate stored state.
func (r Record) clone() Record {
	out := r
	if r.FormData != nil {
		out.FormData = make(map[string]string, len(r.FormData))
		for k, v := range r.FormData {
			out.FormData[k] = v
		}
	}
	return out
}

// redacted returns a copy with the given field keys removed. Used before
// durable writes; the durable draft is a convenience, not a secure store.
func (r Record) redacted(keys []string) Record {
	out := r.clone()
	for _, key := range keys {
		delete(out.FormData, key)
	}
	return out
}

// Store is one persistence scope. Implementations must tolerate concurrent
// calls from the auto-save goroutine and must not panic on underlying
// storage failures.
type Store interface {
	// Save writes the record, replacing any previous one.
	Save(ctx context.Context, record Record) error
	// Load returns the stored record and whether one exists. Corrupt
	// payloads report absence, not an error.
	Load(ctx context.Context) (Record, bool, error)
	// Clear removes any stored record. Idempotent.
	Clear(ctx context.Context) error
}

// Info is a non-mutating summary of a stored draft, exposed to host UIs for
// "resume where you left off" affordances.
type Info struct {
	Exists         bool          `json:"exists"`
	SavedAt        time.Time     `json:"savedAt"`
	Age            time.Duration `json:"age,omitempty"`
	CurrentStep    int           `json:"currentStep,omitempty"`
	FilledSections []int         `json:"filledSections,omitempty"`
}
