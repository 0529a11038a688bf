package state

// NavigateTo sets the active view and subject payload in one commit.
// There are no guard conditions: any transition may be requested at any
// time. Entering a view other than the subject view clears the payload so
// stale subjects never outlive their screen.
func (s *Store) NavigateTo(view View, subject *Subject) {
	if view != ViewSubject {
		subject = nil
	}
	s.Commit(func(prev AppState) AppState {
		prev.CurrentView = view
		prev.ActiveSubject = subject
		return prev
	})
}
