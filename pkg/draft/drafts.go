package draft

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-vendorform/pkg/forms"
)

// DefaultRedactedFields lists the form keys stripped before durable writes.
func DefaultRedactedFields() []string {
	return []string{forms.KeyRegistrationNumber}
}

// Option configures a Drafts composite.
type Option func(*Drafts)

// WithVolatile overrides the volatile scope.
func WithVolatile(store Store) Option {
	return func(d *Drafts) {
		if store != nil {
			d.volatile = store
		}
	}
}

// WithDurable attaches a durable scope. Without one the composite still
// works, purely session-scoped.
func WithDurable(store Store) Option {
	return func(d *Drafts) {
		d.durable = store
	}
}

// WithTTL overrides the draft expiry window.
func WithTTL(ttl time.Duration) Option {
	return func(d *Drafts) {
		if ttl > 0 {
			d.ttl = ttl
		}
	}
}

// WithClock overrides the time source, used by expiry tests.
func WithClock(now func() time.Time) Option {
	return func(d *Drafts) {
		if now != nil {
			d.now = now
		}
	}
}

// WithRedactedFields replaces the sensitive-field list.
func WithRedactedFields(keys ...string) Option {
	return func(d *Drafts) {
		d.redacted = keys
	}
}

// Drafts is the composite store the wizard talks to. Writes land in both
// scopes; reads prefer the volatile copy for recency and fall back to the
// durable one. Every operation is best-effort: an error return signals a
// degraded persistence layer, never a wizard-stopping condition.
type Drafts struct {
	volatile Store
	durable  Store
	ttl      time.Duration
	now      func() time.Time
	redacted []string

	sessionOnce sync.Once
	sessionID   string
}

// New constructs a composite with an in-memory volatile scope and the
// default redaction list.
func New(options ...Option) *Drafts {
	d := &Drafts{
		volatile: NewMemoryStore(),
		ttl:      DefaultTTL,
		now:      time.Now,
		redacted: DefaultRedactedFields(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// SessionID returns the session identifier, generating it lazily on first
// access and keeping it stable for the composite's lifetime.
func (d *Drafts) SessionID() string {
	d.sessionOnce.Do(func() {
		d.sessionID = uuid.NewString()
	})
	return d.sessionID
}

// Save snapshots the given form data and step into both scopes. The durable
// copy is additionally redacted. The first scope error is returned after
// both writes were attempted.
func (d *Drafts) Save(ctx context.Context, formData map[string]string, currentStep int) error {
	record := Record{
		SessionID:   d.SessionID(),
		SavedAt:     d.now().UnixMilli(),
		FormData:    copyData(formData),
		CurrentStep: currentStep,
		Version:     Version,
	}

	err := d.volatile.Save(ctx, record)
	if d.durable != nil {
		if durableErr := d.durable.Save(ctx, record.redacted(d.redacted)); err == nil {
			err = durableErr
		}
	}
	return err
}

// Load returns the freshest unexpired draft, preferring the volatile scope.
// An expired or malformed record is purged as a side effect and reported as
// absent. Scope read errors degrade to absence.
func (d *Drafts) Load(ctx context.Context) (Record, bool) {
	if record, ok := d.loadScope(ctx, d.volatile); ok {
		return record, true
	}
	if d.durable != nil {
		if record, ok := d.loadScope(ctx, d.durable); ok {
			return record, true
		}
	}
	return Record{}, false
}

func (d *Drafts) loadScope(ctx context.Context, store Store) (Record, bool) {
	record, exists, err := store.Load(ctx)
	if err != nil || !exists {
		return Record{}, false
	}
	if !record.wellFormed() {
		_ = store.Clear(ctx)
		return Record{}, false
	}
	if record.age(d.now()) > d.ttl {
		_ = d.Clear(ctx)
		return Record{}, false
	}
	return record, true
}

// Clear removes the draft from both scopes. Idempotent; the first error is
// returned after both scopes were attempted.
func (d *Drafts) Clear(ctx context.Context) error {
	err := d.volatile.Clear(ctx)
	if d.durable != nil {
		if durableErr := d.durable.Clear(ctx); err == nil {
			err = durableErr
		}
	}
	return err
}

// Info reports on the stored draft without mutating either scope: expired
// records are described as absent but not purged.
func (d *Drafts) Info(ctx context.Context) Info {
	record, exists := d.peek(ctx)
	if !exists {
		return Info{}
	}
	savedAt := time.UnixMilli(record.SavedAt)
	return Info{
		Exists:         true,
		SavedAt:        savedAt,
		Age:            d.now().Sub(savedAt),
		CurrentStep:    record.CurrentStep,
		FilledSections: filledSections(record.FormData),
	}
}

// filledSections lists the steps that have at least one non-empty field in
// the snapshot, so hosts can show which sections a resumed draft covers.
func filledSections(data map[string]string) []int {
	var out []int
	for step := 1; step <= forms.StepCount; step++ {
		for _, field := range forms.FieldsForStep(step) {
			if strings.TrimSpace(data[field.Key]) != "" {
				out = append(out, step)
				break
			}
		}
	}
	return out
}

func (d *Drafts) peek(ctx context.Context) (Record, bool) {
	stores := []Store{d.volatile}
	if d.durable != nil {
		stores = append(stores, d.durable)
	}
	for _, store := range stores {
		record, exists, err := store.Load(ctx)
		if err != nil || !exists || !record.wellFormed() {
			continue
		}
		if record.age(d.now()) > d.ttl {
			continue
		}
		return record, true
	}
	return Record{}, false
}

func copyData(data map[string]string) map[string]string {
	out := make(map[string]string, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}
