package session

import (
	"context"
	"log"
	"sync"

	"github.com/priyankaj04/Gymlogs/internal/apiclient"
	"github.com/priyankaj04/Gymlogs/internal/models"
)

type Status int

const (
	StatusLoading Status = iota
	StatusUnauthenticated
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// State is an immutable snapshot. User is non-nil exactly when Status is
// StatusAuthenticated.
type State struct {
	Status Status
	User   *models.User
}

func (s State) IsLoading() bool         { return s.Status == StatusLoading }
func (s State) IsAuthenticated() bool   { return s.Status == StatusAuthenticated }
func (s State) IsUnauthenticated() bool { return s.Status == StatusUnauthenticated }

type Event interface {
	isEvent()
}

// SessionChecked ends the initial Loading phase. A nil User means no session.
type SessionChecked struct{ User *models.User }

type LoggedIn struct{ User models.User }

type LoggedOut struct{}

// Refreshed carries the outcome of a re-validation; nil means the session is
// gone.
type Refreshed struct{ User *models.User }

func (SessionChecked) isEvent() {}
func (LoggedIn) isEvent()       {}
func (LoggedOut) isEvent()      {}
func (Refreshed) isEvent()      {}

func authenticated(user models.User) State {
	return State{Status: StatusAuthenticated, User: &user}
}

// Transition is the whole session state machine.
func Transition(current State, event Event) State {
	switch e := event.(type) {
	case SessionChecked:
		if e.User == nil {
			return State{Status: StatusUnauthenticated}
		}
		return authenticated(*e.User)
	case LoggedIn:
		return authenticated(e.User)
	case LoggedOut:
		return State{Status: StatusUnauthenticated}
	case Refreshed:
		if current.Status == StatusLoading {
			return current
		}
		if e.User == nil {
			return State{Status: StatusUnauthenticated}
		}
		return authenticated(*e.User)
	default:
		return current
	}
}

// Authenticator is the part of the auth client the session manager drives.
type Authenticator interface {
	CurrentUser(ctx context.Context) (*models.User, error)
	Login(ctx context.Context, email, password string) (*apiclient.AuthResult, error)
	Register(ctx context.Context, req apiclient.RegisterRequest) (*apiclient.AuthResult, error)
	Logout(ctx context.Context)
}

var _ Authenticator = (*apiclient.AuthClient)(nil)

// Manager owns the current session state and notifies subscribers after each
// transition.
type Manager struct {
	auth Authenticator

	mu        sync.Mutex
	state     State
	listeners []func(State)
}

func NewManager(auth Authenticator) *Manager {
	return &Manager{auth: auth, state: State{Status: StatusLoading}}
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe registers fn to receive every new state. The returned function
// removes it.
func (m *Manager) Subscribe(fn func(State)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
	idx := len(m.listeners) - 1
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.listeners[idx] = nil
	}
}

func (m *Manager) dispatch(event Event) State {
	m.mu.Lock()
	m.state = Transition(m.state, event)
	next := m.state
	listeners := make([]func(State), 0, len(m.listeners))
	for _, fn := range m.listeners {
		if fn != nil {
			listeners = append(listeners, fn)
		}
	}
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
	return next
}

// Start checks the stored session once. A lookup failure leaves the user
// signed out for this run.
func (m *Manager) Start(ctx context.Context) State {
	user, err := m.auth.CurrentUser(ctx)
	if err != nil {
		log.Printf("Error checking auth state: %v", err)
		user = nil
	}
	return m.dispatch(SessionChecked{User: user})
}

func (m *Manager) Login(ctx context.Context, email, password string) error {
	result, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	m.dispatch(LoggedIn{User: result.User})
	return nil
}

func (m *Manager) Register(ctx context.Context, req apiclient.RegisterRequest) error {
	result, err := m.auth.Register(ctx, req)
	if err != nil {
		return err
	}
	m.dispatch(LoggedIn{User: result.User})
	return nil
}

func (m *Manager) Logout(ctx context.Context) {
	m.auth.Logout(ctx)
	m.dispatch(LoggedOut{})
}

// RefreshUser re-validates the session. A failed lookup counts as a lost
// session; the error is still returned.
func (m *Manager) RefreshUser(ctx context.Context) (State, error) {
	user, err := m.auth.CurrentUser(ctx)
	if err != nil {
		log.Printf("Error refreshing user: %v", err)
		return m.dispatch(Refreshed{}), err
	}
	return m.dispatch(Refreshed{User: user}), nil
}
