package draft_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-vendorform/pkg/draft"
)

func newSQLiteStore(t *testing.T) *draft.SQLiteStore {
	t.Helper()
	store, err := draft.NewSQLiteStore(filepath.Join(t.TempDir(), "drafts.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteSaveLoadClear(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	record := draft.Record{
		SessionID:   "session-1",
		SavedAt:     time.Now().UnixMilli(),
		FormData:    map[string]string{"companyName": "Saigon Sourcing Co."},
		CurrentStep: 2,
		Version:     draft.Version,
	}
	if err := store.Save(ctx, record); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, exists, err := store.Load(ctx)
	if err != nil || !exists {
		t.Fatalf("Load after Save: exists=%v err=%v", exists, err)
	}
	if loaded.SessionID != record.SessionID || loaded.CurrentStep != 2 {
		t.Fatalf("loaded record = %+v", loaded)
	}

	// A second save replaces, never duplicates.
	record.CurrentStep = 3
	if err := store.Save(ctx, record); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	loaded, _, _ = store.Load(ctx)
	if loaded.CurrentStep != 3 {
		t.Fatalf("CurrentStep after overwrite = %d, want 3", loaded.CurrentStep)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("repeated Clear: %v", err)
	}
	if _, exists, _ := store.Load(ctx); exists {
		t.Fatal("record survived Clear")
	}
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "drafts.db")

	store, err := draft.NewSQLiteStore(dsn)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	record := draft.Record{
		SessionID:   "session-1",
		SavedAt:     time.Now().UnixMilli(),
		FormData:    map[string]string{"email": "linh@saigonsourcing.example"},
		CurrentStep: 1,
		Version:     draft.Version,
	}
	if err := store.Save(ctx, record); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := draft.NewSQLiteStore(dsn)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	loaded, exists, err := reopened.Load(ctx)
	if err != nil || !exists {
		t.Fatalf("Load after reopen: exists=%v err=%v", exists, err)
	}
	if loaded.FormData["email"] != "linh@saigonsourcing.example" {
		t.Fatalf("loaded form data = %v", loaded.FormData)
	}
}
