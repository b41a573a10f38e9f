// Package counter is the demo domain: an integer counter with its actions,
// action creators and reducer.
package counter

import "github.com/jask/cinnamon/internal/flux"

// Action tags.
const (
	TypeInc = "inc"
	TypeAdd = "add"
)

// State is the counter value.
type State = int

// Action is a counter action. Payload is the amount for TypeAdd and is
// ignored otherwise.
type Action = flux.Action[int]

// Inc increments the counter by one.
func Inc() Action {
	return Action{Type: TypeInc}
}

// Add adds n to the counter.
func Add(n int) Action {
	return Action{Type: TypeAdd, Payload: n}
}

// Tags returns every tag Reduce handles.
func Tags() []string {
	return []string{TypeInc, TypeAdd}
}

// Reduce is the counter reducer.
func Reduce(state State, action Action) (State, error) {
	switch action.Type {
	case TypeInc:
		return state + 1, nil
	case TypeAdd:
		return state + action.Payload, nil
	default:
		return state, flux.UnknownAction(action.Type, Tags()...)
	}
}
