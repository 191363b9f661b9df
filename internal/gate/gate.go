// Package gate decides what a visitor to the landing page sees based on
// their session status: a loading placeholder, a redirect into the app, or
// the marketing page itself.
//
// The gate never performs side effects. It returns commands that the caller
// dispatches, so the decision can be tested without a navigation backend.
package gate

import "sync"

// DefaultRedirectPath is where authenticated visitors are sent.
const DefaultRedirectPath = "/"

// Status is the externally owned session snapshot. IsAuthenticated is only
// meaningful once IsLoading is false.
type Status struct {
	IsLoading       bool
	IsAuthenticated bool
}

// State is the gate outcome for one evaluation.
type State int

const (
	StateLoading State = iota
	StateRedirecting
	StateShowing
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateRedirecting:
		return "redirecting"
	case StateShowing:
		return "showing"
	default:
		return "unknown"
	}
}

// Command is a side effect requested by the gate.
type Command interface {
	command()
}

// Navigate asks the caller to send the visitor to Path.
type Navigate struct {
	Path string
}

func (Navigate) command() {}

// Decision is the result of evaluating the gate.
type Decision struct {
	State    State
	Commands []Command
}

// ShowsContent reports whether the marketing page should be rendered.
func (d Decision) ShowsContent() bool {
	return d.State == StateShowing
}

// Evaluate maps a session status to a decision, redirecting to
// DefaultRedirectPath.
func Evaluate(s Status) Decision {
	return evaluate(s, DefaultRedirectPath)
}

func evaluate(s Status, target string) Decision {
	switch {
	case s.IsLoading:
		return Decision{State: StateLoading}
	case s.IsAuthenticated:
		return Decision{State: StateRedirecting, Commands: []Command{Navigate{Path: target}}}
	default:
		return Decision{State: StateShowing}
	}
}

// Mount tracks one render lifetime of the gate. Navigation is emitted on the
// first evaluation that resolves to StateRedirecting and never again, however
// often the mount is re-evaluated.
type Mount struct {
	target string

	mu         sync.Mutex
	redirected bool
}

// NewMount creates a mount that redirects to target, or to
// DefaultRedirectPath when target is empty.
func NewMount(target string) *Mount {
	if target == "" {
		target = DefaultRedirectPath
	}
	return &Mount{target: target}
}

// Evaluate returns the decision for s, dropping navigation commands already
// issued by this mount.
func (m *Mount) Evaluate(s Status) Decision {
	d := evaluate(s, m.target)
	if d.State != StateRedirecting {
		return d
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.redirected {
		d.Commands = nil
		return d
	}
	m.redirected = true
	return d
}

// Redirected reports whether this mount has already issued its navigation.
func (m *Mount) Redirected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.redirected
}
