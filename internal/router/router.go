package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/anvu/studyglass/internal/screen"
	"github.com/anvu/studyglass/internal/state"
)

// NavigateMsg requests switching to a view. Subject is only meaningful
// for the subject view and is ignored elsewhere.
type NavigateMsg struct {
	View    state.View
	Subject *state.Subject
}

// Navigate returns a command that switches to the given view.
func Navigate(view state.View) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{View: view}
	}
}

// NavigateSubject returns a command that opens the subject view for a
// specific subject.
func NavigateSubject(subject state.Subject) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{View: state.ViewSubject, Subject: &subject}
	}
}

// Factory builds a fresh screen for a view.
type Factory func() screen.Screen

// Router maps views to screens. Every view is reachable from every
// other view, so screens are rebuilt on each navigation rather than
// kept on a stack.
type Router struct {
	store     *state.Store
	factories map[state.View]Factory

	active     screen.Screen
	activeView state.View
}

// New creates a Router and activates the view recorded in the store,
// falling back to the dashboard when no factory is registered for it.
func New(store *state.Store, factories map[state.View]Factory) *Router {
	r := &Router{
		store:     store,
		factories: factories,
	}
	r.activate(store.State().CurrentView)
	return r
}

// Active returns the current screen.
func (r *Router) Active() screen.Screen {
	return r.active
}

// ActiveView returns the view the router is currently showing.
func (r *Router) ActiveView() state.View {
	return r.activeView
}

// Init returns the active screen's initial command.
func (r *Router) Init() tea.Cmd {
	if r.active == nil {
		return nil
	}
	return r.active.Init()
}

// Update handles navigation messages and forwards everything else to
// the active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if nav, ok := msg.(NavigateMsg); ok {
		r.store.NavigateTo(nav.View, nav.Subject)
		// Read the view back from the store so the screen shown always
		// matches the persisted navigation state.
		r.activate(r.store.State().CurrentView)
		if r.active == nil {
			return nil
		}
		return r.active.Init()
	}

	if r.active == nil {
		return nil
	}

	updated, cmd := r.active.Update(msg)
	r.active = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	if r.active == nil {
		return ""
	}
	return r.active.View(width, height)
}

func (r *Router) activate(view state.View) {
	factory, ok := r.factories[view]
	if !ok {
		view = state.ViewDashboard
		factory = r.factories[view]
	}
	if factory == nil {
		r.active = nil
		return
	}
	r.activeView = view
	r.active = factory()
}
