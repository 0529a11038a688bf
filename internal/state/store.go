package state

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Persister writes the serialized state tree to durable storage.
// Implementations must treat a missing blob as absent, not as an error.
type Persister interface {
	Load(ctx context.Context) (raw []byte, ok bool, err error)
	Save(ctx context.Context, raw []byte) error
}

// Store owns the in-memory AppState tree. All mutation goes through Commit,
// which replaces the tree wholesale and re-persists the full serialization.
// Writes are fire-and-forget: a failed save leaves the in-memory state
// authoritative and is only recorded, never propagated.
type Store struct {
	mu        sync.Mutex
	current   AppState
	extra     map[string]json.RawMessage // unknown fields from hydration, carried forward
	persister Persister
	saveErr   error
}

// NewStore creates a Store starting at InitialState. persister may be nil,
// in which case commits are memory-only (used in tests).
func NewStore(persister Persister) *Store {
	return &Store{
		current:   InitialState(),
		persister: persister,
	}
}

// State returns the current committed snapshot. Callers must re-fetch after
// yielding rather than cache a snapshot across commits.
func (s *Store) State() AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Commit applies updater to the current state, installs the result, and
// persists the whole serialized tree. Every commit re-serializes the entire
// state regardless of which field changed.
func (s *Store) Commit(updater func(AppState) AppState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = updater(s.current)
	s.persist()
}

// Hydrate overlays a persisted blob onto InitialState and installs the
// result. On parse failure the state is left untouched and the error is
// logged, never returned. Hydrating is not a commit: it does not persist.
func (s *Store) Hydrate(raw []byte) {
	merged, extra, err := hydrate(InitialState(), raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = merged
	s.extra = extra
}

// LastSaveError returns the outcome of the most recent persistence attempt:
// nil after a successful save (or before the first one). The in-memory
// state and the persisted copy may diverge while this is non-nil; the next
// successful save re-syncs them.
func (s *Store) LastSaveError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveErr
}

// persist serializes and saves the current state. Caller holds mu.
func (s *Store) persist() {
	if s.persister == nil {
		return
	}
	raw, err := serialize(s.current, s.extra)
	if err != nil {
		// Cannot happen with the AppState shape, but never panic the UI.
		s.saveErr = err
		fmt.Fprintf(os.Stderr, "warning: serialize state: %v\n", err)
		return
	}
	if err := s.persister.Save(context.Background(), raw); err != nil {
		s.saveErr = err
		fmt.Fprintf(os.Stderr, "warning: persist state: %v\n", err)
		return
	}
	s.saveErr = nil
}
