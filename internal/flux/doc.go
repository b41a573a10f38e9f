// Package flux contains the unidirectional state core: actions, reducers,
// the observable Store, and the Connect adapter that binds a store to a view.
//
// Allowed here:
// - state transition contracts (Action, Reducer, Publish, Listener)
// - the Store and its notification cycle
// - view binding lifecycle (activate/deactivate) with no knowledge of any renderer
//
// Not allowed here:
// - concrete domains (counters, instances) or terminal rendering
package flux
