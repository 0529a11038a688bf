package store

import (
	"context"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestStateLoadAbsent(t *testing.T) {
	s := openTestStore(t)
	repo := s.StateRepo()

	raw, ok, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load (empty): %v", err)
	}
	if ok {
		t.Fatal("expected absent state, got ok=true")
	}
	if raw != nil {
		t.Fatal("expected nil raw for absent state")
	}
}

func TestStateSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.StateRepo()
	ctx := context.Background()

	blob := []byte(`{"currentView":"dashboard"}`)
	if err := repo.Save(ctx, blob); err != nil {
		t.Fatalf("save: %v", err)
	}

	raw, ok, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok {
		t.Fatal("expected state to be present")
	}
	if string(raw) != string(blob) {
		t.Errorf("raw = %s, want %s", raw, blob)
	}
}

func TestStateSaveOverwrites(t *testing.T) {
	s := openTestStore(t)
	repo := s.StateRepo()
	ctx := context.Background()

	if err := repo.Save(ctx, []byte(`{"v":1}`)); err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(ctx, []byte(`{"v":2}`)); err != nil {
		t.Fatal(err)
	}

	raw, ok, err := repo.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if string(raw) != `{"v":2}` {
		t.Errorf("raw = %s, want latest write", raw)
	}

	// A single key: repeated saves must not accumulate rows.
	var count int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM app_state").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("rows = %d, want 1", count)
	}
}

func TestStateDelete(t *testing.T) {
	s := openTestStore(t)
	repo := s.StateRepo()
	ctx := context.Background()

	if err := repo.Save(ctx, []byte(`{"v":1}`)); err != nil {
		t.Fatal(err)
	}
	if err := repo.Delete(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}

	_, ok, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load after delete: %v", err)
	}
	if ok {
		t.Error("expected state absent after delete")
	}

	// Deleting again is a no-op.
	if err := repo.Delete(ctx); err != nil {
		t.Errorf("second delete: %v", err)
	}
}
