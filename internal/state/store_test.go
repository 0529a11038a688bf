package state

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

// memPersister records saves in memory and can be told to fail.
type memPersister struct {
	raw   []byte
	saves int
	fail  error
}

func (m *memPersister) Load(context.Context) ([]byte, bool, error) {
	if m.raw == nil {
		return nil, false, nil
	}
	return m.raw, true, nil
}

func (m *memPersister) Save(_ context.Context, raw []byte) error {
	m.saves++
	if m.fail != nil {
		return m.fail
	}
	m.raw = append([]byte(nil), raw...)
	return nil
}

func TestInitialState(t *testing.T) {
	st := InitialState()
	if st.CurrentView != ViewDashboard {
		t.Errorf("currentView = %q, want dashboard", st.CurrentView)
	}
	if st.ActiveSubject != nil {
		t.Error("activeSubject should start nil")
	}
	if st.StudentProfile != (StudentProfile{}) {
		t.Error("studentProfile should start all-empty")
	}
	if st.StudyStats != (StudyStats{}) {
		t.Error("studyStats should start zeroed")
	}
	if st.GradeRecord == nil {
		t.Error("gradeRecord should start as an empty map, not nil")
	}
}

func TestCommitPersistsWholeTree(t *testing.T) {
	p := &memPersister{}
	s := NewStore(p)

	s.AddLesson(Lesson{ID: "l1", Subject: SubjectMath, Topic: "Đạo hàm"})
	if p.saves != 1 {
		t.Fatalf("saves = %d, want 1", p.saves)
	}

	// Reload the persisted blob into a fresh store: it must reproduce the
	// committed state exactly.
	fresh := NewStore(nil)
	fresh.Hydrate(p.raw)
	if !reflect.DeepEqual(fresh.State(), s.State()) {
		t.Errorf("reloaded state differs:\n got %+v\nwant %+v", fresh.State(), s.State())
	}
}

func TestSaveFailureKeepsMemoryAuthoritative(t *testing.T) {
	p := &memPersister{fail: errors.New("quota exceeded")}
	s := NewStore(p)

	s.AddLesson(Lesson{ID: "l1", Topic: "a"})
	if s.LastSaveError() == nil {
		t.Fatal("expected save error to be recorded")
	}
	if len(s.State().SavedLessons) != 1 {
		t.Fatal("in-memory state must survive a failed save")
	}

	// Next successful write re-syncs.
	p.fail = nil
	s.AddLesson(Lesson{ID: "l2", Topic: "b"})
	if s.LastSaveError() != nil {
		t.Fatalf("save error should clear after success: %v", s.LastSaveError())
	}
	fresh := NewStore(nil)
	fresh.Hydrate(p.raw)
	if len(fresh.State().SavedLessons) != 2 {
		t.Errorf("persisted lessons = %d, want 2", len(fresh.State().SavedLessons))
	}
}

func TestHydrateIdempotent(t *testing.T) {
	blob := []byte(`{"currentView":"planner","tasks":[{"id":"t1","text":"Ôn Lý","completed":true}]}`)

	once := NewStore(nil)
	once.Hydrate(blob)

	twice := NewStore(nil)
	twice.Hydrate(blob)
	twice.Hydrate(blob)

	if !reflect.DeepEqual(once.State(), twice.State()) {
		t.Error("hydrating twice with the same blob must equal hydrating once")
	}
}

func TestHydrateDefensiveMerge(t *testing.T) {
	s := NewStore(nil)
	s.Hydrate([]byte(`{"studentProfile":{"name":"An"},"studyStats":{"streakDays":4}}`))

	st := s.State()
	if st.StudentProfile.Name != "An" {
		t.Errorf("name = %q, want An", st.StudentProfile.Name)
	}
	if st.StudentProfile.TargetUniversity != "" {
		t.Errorf("targetUniversity = %q, want empty string", st.StudentProfile.TargetUniversity)
	}
	if st.StudyStats.StreakDays != 4 {
		t.Errorf("streakDays = %d, want 4", st.StudyStats.StreakDays)
	}
	if st.StudyStats.LastLoginDate != "" {
		t.Errorf("lastLoginDate = %q, want empty string", st.StudyStats.LastLoginDate)
	}
}

func TestHydrateMalformedBlobLeavesStateUnchanged(t *testing.T) {
	s := NewStore(nil)
	s.AddLesson(Lesson{ID: "keep", Topic: "x"})
	before := s.State()

	s.Hydrate([]byte(`{not json`))

	if !reflect.DeepEqual(s.State(), before) {
		t.Error("malformed blob must leave state unchanged")
	}
}

func TestHydrateUnknownViewFallsBackToDashboard(t *testing.T) {
	s := NewStore(nil)
	s.Hydrate([]byte(`{"currentView":"time_machine"}`))
	if got := s.State().CurrentView; got != ViewDashboard {
		t.Errorf("currentView = %q, want dashboard", got)
	}
}

func TestHydratePreservesUnknownFields(t *testing.T) {
	p := &memPersister{}
	s := NewStore(p)
	s.Hydrate([]byte(`{"studentProfile":{"name":"An"},"futureFeature":{"enabled":true}}`))

	s.AddStudyMinutes(10)

	var out map[string]json.RawMessage
	if err := json.Unmarshal(p.raw, &out); err != nil {
		t.Fatalf("persisted blob not valid JSON: %v", err)
	}
	if string(out["futureFeature"]) != `{"enabled":true}` {
		t.Errorf("futureFeature = %s, want preserved verbatim", out["futureFeature"])
	}
}

func TestJSONFieldNames(t *testing.T) {
	raw, err := json.Marshal(InitialState())
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{
		"currentView", "activeSubject", "savedLessons", "flashcards",
		"tasks", "reminders", "chatSessions", "activeChatSessionId",
		"studentProfile", "gradeRecord", "studyStats",
	} {
		if _, ok := m[field]; !ok {
			t.Errorf("serialized state missing field %q", field)
		}
	}
}
