package draft_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-vendorform/pkg/draft"
	"github.com/goliatone/go-vendorform/pkg/forms"
)

// failingStore simulates a disabled or quota-exhausted scope.
type failingStore struct{}

func (failingStore) Save(context.Context, draft.Record) error { return errors.New("quota exceeded") }
func (failingStore) Load(context.Context) (draft.Record, bool, error) {
	return draft.Record{}, false, errors.New("storage disabled")
}
func (failingStore) Clear(context.Context) error { return errors.New("storage disabled") }

func sampleData() map[string]string {
	return map[string]string{
		forms.KeyCompanyName:        "Saigon Sourcing Co.",
		forms.KeyEmail:              "linh@saigonsourcing.example",
		forms.KeyRegistrationNumber: "0312-445-889",
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	durable := draft.NewMemoryStore()
	drafts := draft.New(draft.WithDurable(durable))

	if err := drafts.Save(ctx, sampleData(), 2); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	record, ok := drafts.Load(ctx)
	if !ok {
		t.Fatal("Load found no record after Save")
	}
	if record.CurrentStep != 2 {
		t.Fatalf("CurrentStep = %d, want 2", record.CurrentStep)
	}
	if record.Version != draft.Version {
		t.Fatalf("Version = %q, want %q", record.Version, draft.Version)
	}
	if diff := cmp.Diff(sampleData(), record.FormData); diff != "" {
		t.Fatalf("volatile form data mismatch (-want +got):\n%s", diff)
	}
}

func TestDurableCopyIsRedacted(t *testing.T) {
	ctx := context.Background()
	durable := draft.NewMemoryStore()
	drafts := draft.New(draft.WithDurable(durable))

	if err := drafts.Save(ctx, sampleData(), 3); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	record, exists, err := durable.Load(ctx)
	if err != nil || !exists {
		t.Fatalf("durable scope empty after Save (exists=%v err=%v)", exists, err)
	}
	if _, found := record.FormData[forms.KeyRegistrationNumber]; found {
		t.Fatal("sensitive field leaked into durable scope")
	}
	if record.FormData[forms.KeyCompanyName] == "" {
		t.Fatal("non-sensitive field missing from durable scope")
	}
}

func TestVolatilePreferredOverDurable(t *testing.T) {
	ctx := context.Background()
	drafts := draft.New(draft.WithDurable(draft.NewMemoryStore()))

	if err := drafts.Save(ctx, sampleData(), 1); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	record, ok := drafts.Load(ctx)
	if !ok {
		t.Fatal("Load found nothing")
	}
	// The volatile copy keeps the sensitive field, so reading it back proves
	// the volatile scope won.
	if record.FormData[forms.KeyRegistrationNumber] == "" {
		t.Fatal("load did not prefer the volatile scope")
	}
}

func TestExpiredDraftIsPurged(t *testing.T) {
	ctx := context.Background()
	current := time.Now()
	drafts := draft.New(
		draft.WithDurable(draft.NewMemoryStore()),
		draft.WithClock(func() time.Time { return current }),
	)

	if err := drafts.Save(ctx, sampleData(), 2); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	current = current.Add(draft.DefaultTTL + time.Hour)

	if _, ok := drafts.Load(ctx); ok {
		t.Fatal("expired draft returned by Load")
	}
	// The expired read purges both scopes: a fresh load within TTL must find
	// nothing either.
	current = current.Add(-draft.DefaultTTL)
	if _, ok := drafts.Load(ctx); ok {
		t.Fatal("purge did not remove the expired draft")
	}
}

func TestMalformedRecordTreatedAsAbsent(t *testing.T) {
	ctx := context.Background()
	volatile := draft.NewMemoryStore()
	drafts := draft.New(draft.WithVolatile(volatile))

	// Missing form data and a zero step violate the minimum shape.
	if err := volatile.Save(ctx, draft.Record{SavedAt: time.Now().UnixMilli()}); err != nil {
		t.Fatalf("seed Save returned error: %v", err)
	}
	if _, ok := drafts.Load(ctx); ok {
		t.Fatal("malformed record returned by Load")
	}
}

func TestClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	drafts := draft.New(draft.WithDurable(draft.NewMemoryStore()))

	if err := drafts.Save(ctx, sampleData(), 1); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := drafts.Clear(ctx); err != nil {
		t.Fatalf("first Clear returned error: %v", err)
	}
	if err := drafts.Clear(ctx); err != nil {
		t.Fatalf("second Clear returned error: %v", err)
	}
	if _, ok := drafts.Load(ctx); ok {
		t.Fatal("draft survived Clear")
	}
}

func TestFailingScopesDegradeGracefully(t *testing.T) {
	ctx := context.Background()
	drafts := draft.New(draft.WithDurable(failingStore{}))

	// The volatile write succeeds, so Save reports the durable failure while
	// keeping the draft loadable.
	if err := drafts.Save(ctx, sampleData(), 2); err == nil {
		t.Fatal("Save should surface the durable scope failure")
	}
	if _, ok := drafts.Load(ctx); !ok {
		t.Fatal("volatile draft lost because of durable failure")
	}

	// A fully failing composite still never panics.
	broken := draft.New(draft.WithVolatile(failingStore{}), draft.WithDurable(failingStore{}))
	if _, ok := broken.Load(ctx); ok {
		t.Fatal("broken store reported a draft")
	}
	if err := broken.Save(ctx, sampleData(), 1); err == nil {
		t.Fatal("broken store Save should report failure")
	}
}

func TestSessionIDStable(t *testing.T) {
	drafts := draft.New()
	first := drafts.SessionID()
	if first == "" {
		t.Fatal("empty session id")
	}
	if second := drafts.SessionID(); second != first {
		t.Fatalf("session id changed between accesses: %q then %q", first, second)
	}
	if other := draft.New().SessionID(); other == first {
		t.Fatal("distinct composites share a session id")
	}
}

func TestInfoDoesNotPurge(t *testing.T) {
	ctx := context.Background()
	current := time.Now()
	volatile := draft.NewMemoryStore()
	drafts := draft.New(
		draft.WithVolatile(volatile),
		draft.WithClock(func() time.Time { return current }),
	)

	if err := drafts.Save(ctx, sampleData(), 3); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	info := drafts.Info(ctx)
	if !info.Exists || info.CurrentStep != 3 {
		t.Fatalf("info = %+v, want existing draft at step 3", info)
	}

	current = current.Add(draft.DefaultTTL + time.Hour)
	if info := drafts.Info(ctx); info.Exists {
		t.Fatal("expired draft still reported by Info")
	}
	// Info must not purge: the raw record is still in the scope.
	if _, exists, _ := volatile.Load(ctx); !exists {
		t.Fatal("Info purged the stored record")
	}
}
