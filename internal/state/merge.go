package state

import (
	"encoding/json"
	"fmt"
)

// knownFields are the top-level JSON names owned by AppState. Anything
// else in a persisted blob is carried through commits untouched, so blobs
// written by a newer schema survive a round-trip through this binary.
var knownFields = map[string]bool{
	"currentView":         true,
	"activeSubject":       true,
	"savedLessons":        true,
	"flashcards":          true,
	"tasks":               true,
	"reminders":           true,
	"chatSessions":        true,
	"activeChatSessionId": true,
	"studentProfile":      true,
	"gradeRecord":         true,
	"studyStats":          true,
}

// hydrate overlays a persisted blob onto base and returns the merged state
// plus any unknown top-level fields. It is a pure function: base is not
// modified, storage is not touched.
//
// The overlay is field-by-field: any top-level field present in raw replaces
// the base value, fields absent from raw keep their base value. Two records
// get a deeper defensive merge so blobs written by an older schema that lack
// newly introduced sub-fields still hydrate with every sub-field present:
// studentProfile and studyStats.
func hydrate(base AppState, raw []byte) (AppState, map[string]json.RawMessage, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return base, nil, fmt.Errorf("parse persisted state: %w", err)
	}

	merged := base
	if err := json.Unmarshal(raw, &merged); err != nil {
		return base, nil, fmt.Errorf("overlay persisted state: %w", err)
	}

	var extra map[string]json.RawMessage
	for k, v := range probe {
		if !knownFields[k] {
			if extra == nil {
				extra = map[string]json.RawMessage{}
			}
			extra[k] = v
		}
	}

	// Decoding onto a copy of base is the defensive merge: fields absent
	// from raw keep their base value, and a partial studentProfile or
	// studyStats object fills only the sub-fields it names — the rest stay
	// at their defaults, so blobs from an older schema hydrate with every
	// sub-field present.
	if merged.GradeRecord == nil {
		merged.GradeRecord = map[string][]GradeEntry{}
	}
	if !merged.CurrentView.Valid() {
		merged.CurrentView = ViewDashboard
	}

	return merged, extra, nil
}

// serialize marshals the state, re-attaching any unknown fields carried
// over from hydration.
func serialize(st AppState, extra map[string]json.RawMessage) ([]byte, error) {
	if len(extra) == 0 {
		return json.Marshal(st)
	}
	known, err := json.Marshal(st)
	if err != nil {
		return nil, err
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(known, &m); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, owned := m[k]; !owned {
			m[k] = v
		}
	}
	return json.Marshal(m)
}
