package flux

import "fmt"

// Action is tagged data describing an intended state transition.
type Action[P any] struct {
	Type    string
	Payload P
}

// ActionType returns the action's tag.
func (a Action[P]) ActionType() string { return a.Type }

// Typed is implemented by actions that expose a tag.
type Typed interface {
	ActionType() string
}

// TypeOf returns the tag of action, or its Go type name when it has none.
func TypeOf(action any) string {
	if t, ok := action.(Typed); ok {
		return t.ActionType()
	}
	return fmt.Sprintf("%T", action)
}

// Reducer computes the next state from the current state and an action.
// It must not mutate state in place and must fail with ErrUnknownAction on
// tags it does not handle.
type Reducer[S, A any] func(state S, action A) (S, error)

// Publish applies an action to a store.
type Publish[A any] func(action A) error

// Listener is notified with the new state after a successful publish.
// Listeners are compared by identity, so implementations should be pointers.
type Listener[S any] interface {
	OnState(state S)
}

type funcListener[S any] struct {
	fn func(S)
}

func (l *funcListener[S]) OnState(state S) { l.fn(state) }

// Listen wraps fn in a Listener with its own identity. Each call returns a
// distinct listener, even for the same fn.
func Listen[S any](fn func(S)) Listener[S] {
	return &funcListener[S]{fn: fn}
}
