package state

import (
	"time"

	"github.com/google/uuid"
)

// dateLayout is the display date stamped onto lessons and chat sessions.
const dateLayout = "02/01/2006"

// AddLesson prepends a lesson to savedLessons. Newest-first ordering is a
// hard invariant: the dashboard's "recent lessons" panel relies on it.
func (s *Store) AddLesson(lesson Lesson) {
	s.Commit(func(prev AppState) AppState {
		prev.SavedLessons = append([]Lesson{lesson}, prev.SavedLessons...)
		return prev
	})
}

// Collection is a typed mutation handle over one slice of the tree.
// Replace installs a literal new slice; Transform derives the new slice
// from the latest committed one. Transform reads inside the commit, so
// rapid sequential calls never act on a stale snapshot.
type Collection[T any] struct {
	store *Store
	get   func(AppState) []T
	set   func(AppState, []T) AppState
}

// Replace installs items as the new slice.
func (c Collection[T]) Replace(items []T) {
	c.store.Commit(func(prev AppState) AppState {
		return c.set(prev, items)
	})
}

// Transform applies fn to the latest committed slice.
func (c Collection[T]) Transform(fn func([]T) []T) {
	c.store.Commit(func(prev AppState) AppState {
		return c.set(prev, fn(c.get(prev)))
	})
}

// Flashcards returns the mutation handle for the flashcard deck.
func (s *Store) Flashcards() Collection[Flashcard] {
	return Collection[Flashcard]{
		store: s,
		get:   func(st AppState) []Flashcard { return st.Flashcards },
		set: func(st AppState, v []Flashcard) AppState {
			st.Flashcards = v
			return st
		},
	}
}

// Tasks returns the mutation handle for planner tasks.
func (s *Store) Tasks() Collection[Task] {
	return Collection[Task]{
		store: s,
		get:   func(st AppState) []Task { return st.Tasks },
		set: func(st AppState, v []Task) AppState {
			st.Tasks = v
			return st
		},
	}
}

// Reminders returns the mutation handle for planner reminders.
func (s *Store) Reminders() Collection[Reminder] {
	return Collection[Reminder]{
		store: s,
		get:   func(st AppState) []Reminder { return st.Reminders },
		set: func(st AppState, v []Reminder) AppState {
			st.Reminders = v
			return st
		},
	}
}

// NewChatSession prepends an empty session and makes it active in the same
// commit. Returns the new session's id.
func (s *Store) NewChatSession() string {
	id := uuid.NewString()
	s.Commit(func(prev AppState) AppState {
		session := ChatSession{
			ID:       id,
			Title:    "Chat mới",
			Messages: []ChatMessage{},
			Date:     time.Now().Format(dateLayout),
		}
		prev.ChatSessions = append([]ChatSession{session}, prev.ChatSessions...)
		prev.ActiveChatSessionID = &id
		return prev
	})
	return id
}

// DeleteChatSession removes the session with the given id.
//
// If the deleted session was active, activeChatSessionId is left pointing
// at it. Consumers resolve the active session through AppState.ActiveSession,
// which treats a lookup miss as "no session selected", so the stale id is
// never dereferenced.
func (s *Store) DeleteChatSession(id string) {
	s.Commit(func(prev AppState) AppState {
		kept := prev.ChatSessions[:0:0]
		for _, session := range prev.ChatSessions {
			if session.ID != id {
				kept = append(kept, session)
			}
		}
		prev.ChatSessions = kept
		return prev
	})
}

// UpdateChatSession replaces the message list of the matching session.
// Nothing else on the session changes, not even the title. No-op if no
// session has the given id.
func (s *Store) UpdateChatSession(id string, messages []ChatMessage) {
	s.Commit(func(prev AppState) AppState {
		sessions := make([]ChatSession, len(prev.ChatSessions))
		copy(sessions, prev.ChatSessions)
		for i := range sessions {
			if sessions[i].ID == id {
				sessions[i].Messages = messages
				break
			}
		}
		prev.ChatSessions = sessions
		return prev
	})
}

// SelectChatSession sets the active session id. No existence check.
func (s *Store) SelectChatSession(id string) {
	s.Commit(func(prev AppState) AppState {
		prev.ActiveChatSessionID = &id
		return prev
	})
}

// SetGrades replaces the grade record wholesale. The grade tracker screen
// is responsible for read-modify-write against the latest snapshot.
func (s *Store) SetGrades(record map[string][]GradeEntry) {
	s.Commit(func(prev AppState) AppState {
		if record == nil {
			record = map[string][]GradeEntry{}
		}
		prev.GradeRecord = record
		return prev
	})
}

// SetProfile replaces the student profile wholesale.
func (s *Store) SetProfile(profile StudentProfile) {
	s.Commit(func(prev AppState) AppState {
		prev.StudentProfile = profile
		return prev
	})
}

// TouchLogin updates the study streak for today: consecutive days extend
// the streak, a gap resets it to 1, a repeat login changes nothing.
func (s *Store) TouchLogin(now time.Time) {
	today := now.Format("2006-01-02")
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")
	s.Commit(func(prev AppState) AppState {
		switch prev.StudyStats.LastLoginDate {
		case today:
			return prev
		case yesterday:
			prev.StudyStats.StreakDays++
		default:
			prev.StudyStats.StreakDays = 1
		}
		prev.StudyStats.LastLoginDate = today
		return prev
	})
}

// AddStudyMinutes adds n minutes to the accumulated study time.
func (s *Store) AddStudyMinutes(n int) {
	if n <= 0 {
		return
	}
	s.Commit(func(prev AppState) AppState {
		prev.StudyStats.TotalStudyMinutes += n
		return prev
	})
}
