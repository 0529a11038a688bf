package state

// View identifies which feature screen is active.
type View string

const (
	ViewDashboard    View = "dashboard"
	ViewSubject      View = "subject"
	ViewFlashcards   View = "flashcards"
	ViewPlanner      View = "planner"
	ViewChatbot      View = "chatbot"
	ViewExamPrep     View = "exam_prep"
	ViewGradeTracker View = "grade_tracker"
)

// Valid reports whether v is one of the known views.
func (v View) Valid() bool {
	switch v {
	case ViewDashboard, ViewSubject, ViewFlashcards, ViewPlanner,
		ViewChatbot, ViewExamPrep, ViewGradeTracker:
		return true
	}
	return false
}

// Subject is one of the academic subjects a student studies for.
type Subject string

const (
	SubjectMath        Subject = "Toán"
	SubjectLiterature  Subject = "Ngữ Văn"
	SubjectEnglish     Subject = "Tiếng Anh"
	SubjectInformatics Subject = "Tin Học"
)

// Subjects lists all subjects in dashboard display order.
func Subjects() []Subject {
	return []Subject{SubjectMath, SubjectLiterature, SubjectEnglish, SubjectInformatics}
}

// Lesson is a saved subject lesson. Append-only from the UI's perspective.
type Lesson struct {
	ID      string  `json:"id"`
	Subject Subject `json:"subject"`
	Topic   string  `json:"topic"`
	Content string  `json:"content"`
	Date    string  `json:"date"`
}

// Flashcard is a single question/answer card. The flashcard screen owns
// uniqueness; the store treats the deck as an opaque slice.
type Flashcard struct {
	ID    string `json:"id"`
	Front string `json:"front"`
	Back  string `json:"back"`
	Topic string `json:"topic,omitempty"`
	Flips int    `json:"flips,omitempty"`
	Known bool   `json:"known,omitempty"`
}

// Task is a planner to-do item.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Reminder is a planner reminder.
type Reminder struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	When string `json:"when,omitempty"`
}

// ChatMessage is one message in a chat session transcript.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatSession is one conversation with the assistant.
type ChatSession struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Messages []ChatMessage `json:"messages"`
	Date     string        `json:"date"`
}

// StudentProfile holds the free-text fields the assistant personalizes on.
// Fields are never null: absent values are empty strings.
type StudentProfile struct {
	Name             string `json:"name"`
	TargetUniversity string `json:"targetUniversity"`
	TargetMajor      string `json:"targetMajor"`
	TargetScore      string `json:"targetScore"`
	Strengths        string `json:"strengths"`
	Weaknesses       string `json:"weaknesses"`
	LearningStyle    string `json:"learningStyle"`
}

// GradeEntry is one recorded grade under a subject/category key.
type GradeEntry struct {
	Score float64 `json:"score"`
	Note  string  `json:"note,omitempty"`
	Date  string  `json:"date,omitempty"`
}

// StudyStats tracks login streaks and accumulated study time.
type StudyStats struct {
	StreakDays        int    `json:"streakDays"`
	LastLoginDate     string `json:"lastLoginDate"`
	TotalStudyMinutes int    `json:"totalStudyMinutes"`
}

// AppState is the single root tree holding all session-persisted user data
// and the current navigation position. It is only ever replaced wholesale
// per commit, never mutated in place.
type AppState struct {
	CurrentView         View                    `json:"currentView"`
	ActiveSubject       *Subject                `json:"activeSubject"`
	SavedLessons        []Lesson                `json:"savedLessons"`
	Flashcards          []Flashcard             `json:"flashcards"`
	Tasks               []Task                  `json:"tasks"`
	Reminders           []Reminder              `json:"reminders"`
	ChatSessions        []ChatSession           `json:"chatSessions"`
	ActiveChatSessionID *string                 `json:"activeChatSessionId"`
	StudentProfile      StudentProfile          `json:"studentProfile"`
	GradeRecord         map[string][]GradeEntry `json:"gradeRecord"`
	StudyStats          StudyStats              `json:"studyStats"`
}

// InitialState returns the default AppState used at process start,
// before hydration overwrites it.
func InitialState() AppState {
	return AppState{
		CurrentView: ViewDashboard,
		GradeRecord: map[string][]GradeEntry{},
	}
}

// ActiveSession returns the session referenced by ActiveChatSessionID,
// or nil if none is selected or the id no longer matches a session.
// A stale id after deletion is treated as "no session selected".
func (s AppState) ActiveSession() *ChatSession {
	if s.ActiveChatSessionID == nil {
		return nil
	}
	for i := range s.ChatSessions {
		if s.ChatSessions[i].ID == *s.ActiveChatSessionID {
			return &s.ChatSessions[i]
		}
	}
	return nil
}
