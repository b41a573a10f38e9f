// Package instance lifts a single-state reducer into a reducer over many
// named instances of that state, so they can share one store.
package instance

import (
	"maps"
	"reflect"
	"slices"

	"github.com/jask/cinnamon/internal/flux"
)

// Action tags handled by Reducer.Apply.
const (
	TypeCreate = "createInstance"
	TypeReduce = "reduceInstance"
)

// State maps an instance ref to its state.
type State[S any] map[string]S

// Payload carries the ref and either the initial state (TypeCreate) or the
// delegate action (TypeReduce).
type Payload[S, A any] struct {
	Ref    string
	State  S
	Action A
}

// Action is an instance action.
type Action[S, A any] = flux.Action[Payload[S, A]]

// Reducer manages many instances of one state/action pair. It keeps no state
// of its own.
type Reducer[S, A any] struct {
	delegate flux.Reducer[S, A]
}

// New wraps delegate.
func New[S, A any](delegate flux.Reducer[S, A]) *Reducer[S, A] {
	return &Reducer[S, A]{delegate: delegate}
}

// Create returns an action binding ref to state.
func (r *Reducer[S, A]) Create(ref string, state S) Action[S, A] {
	return Action[S, A]{Type: TypeCreate, Payload: Payload[S, A]{Ref: ref, State: state}}
}

// Reduce returns an action applying action to the instance at ref.
func (r *Reducer[S, A]) Reduce(ref string, action A) Action[S, A] {
	return Action[S, A]{Type: TypeReduce, Payload: Payload[S, A]{Ref: ref, Action: action}}
}

// Apply is the reducer to give a store. It never mutates instances; every
// successful call returns a new map.
//
// TypeCreate overwrites any existing binding for the ref. TypeReduce on a ref
// with no binding hands the delegate the zero value of S; whether that is
// valid is up to the delegate.
func (r *Reducer[S, A]) Apply(instances State[S], action Action[S, A]) (State[S], error) {
	switch action.Type {
	case TypeCreate:
		return with(instances, action.Payload.Ref, action.Payload.State), nil
	case TypeReduce:
		ref := action.Payload.Ref
		next, err := r.delegate(instances[ref], action.Payload.Action)
		if err != nil {
			return instances, err
		}
		return with(instances, ref, next), nil
	default:
		return instances, flux.UnsupportedAction(action.Type)
	}
}

func with[S any](instances State[S], ref string, state S) State[S] {
	next := make(State[S], len(instances)+1)
	maps.Copy(next, instances)
	next[ref] = state
	return next
}

// Same reports whether a and b are the same map. Use it with flux.WithEqual
// to skip notification when a reducer hands back its input.
func Same[S any](a, b State[S]) bool {
	return reflect.ValueOf(a).UnsafePointer() == reflect.ValueOf(b).UnsafePointer()
}

// Refs returns the instance refs in sorted order.
func Refs[S any](instances State[S]) []string {
	return slices.Sorted(maps.Keys(instances))
}
