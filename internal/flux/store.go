package flux

import (
	"slices"
	"sync"
	"time"

	"github.com/golang/glog"
)

// Observer receives timing callbacks from a store. Implementations must not
// call back into the store.
type Observer interface {
	// OnPublish is called after the reducer ran (or the publish was rejected).
	OnPublish(store string, action string, err error, elapsed time.Duration)

	// OnNotify is called after every listener of one cycle was invoked.
	OnNotify(store string, listeners int, elapsed time.Duration)
}

// Option configures a Store.
type Option[S any] func(*storeOptions[S])

type storeOptions[S any] struct {
	name     string
	equal    func(prev, next S) bool
	observer Observer
}

// WithName labels the store in logs and telemetry.
func WithName[S any](name string) Option[S] {
	return func(o *storeOptions[S]) {
		o.name = name
	}
}

// WithEqual skips notification when eq reports that a publish left the
// state unchanged. The new state is still stored.
func WithEqual[S any](eq func(prev, next S) bool) Option[S] {
	return func(o *storeOptions[S]) {
		o.equal = eq
	}
}

// WithObserver attaches an Observer to the store.
func WithObserver[S any](observer Observer) Option[S] {
	return func(o *storeOptions[S]) {
		o.observer = observer
	}
}

// Equal compares two comparable states. Use it with WithEqual.
func Equal[S comparable](prev, next S) bool {
	return prev == next
}

// Store holds the current state of one domain and the reducer that governs it.
//
// All operations are synchronous. The mutex guards state and listeners but is
// never held while the reducer or a listener runs, so listeners may subscribe,
// unsubscribe and read State freely. Publish is not re-entrant: a publish
// started while another is reducing or notifying fails with
// ErrPublishInProgress.
type Store[S, A any] struct {
	mu         sync.Mutex
	state      S
	reducer    Reducer[S, A]
	listeners  []Listener[S]
	publishing bool

	name     string
	equal    func(prev, next S) bool
	observer Observer
}

// NewStore creates a store with an initial state and reducer.
func NewStore[S, A any](initial S, reducer Reducer[S, A], opts ...Option[S]) *Store[S, A] {
	o := storeOptions[S]{name: "store"}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[S, A]{
		state:    initial,
		reducer:  reducer,
		name:     o.name,
		equal:    o.equal,
		observer: o.observer,
	}
}

// Name returns the store label.
func (s *Store[S, A]) Name() string { return s.name }

// State returns the current state.
func (s *Store[S, A]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Len returns the number of subscribed listeners.
func (s *Store[S, A]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

// Publish applies action to the current state. If the reducer fails the
// state is left untouched and the error is returned. Otherwise the state is
// replaced and listeners are notified before Publish returns.
func (s *Store[S, A]) Publish(action A) error {
	tag := TypeOf(action)

	s.mu.Lock()
	if s.publishing {
		s.mu.Unlock()
		glog.V(2).Infof("[store]%s publish %s rejected, cycle in progress\n", s.name, tag)
		if s.observer != nil {
			s.observer.OnPublish(s.name, tag, ErrPublishInProgress, 0)
		}
		return ErrPublishInProgress
	}
	s.publishing = true
	prev, reducer := s.state, s.reducer
	s.mu.Unlock()

	defer s.release()

	start := time.Now()
	next, err := reducer(prev, action)
	if s.observer != nil {
		s.observer.OnPublish(s.name, tag, err, time.Since(start))
	}
	if err != nil {
		glog.V(2).Infof("[store]%s publish %s error = %s\n", s.name, tag, err)
		return err
	}
	glog.V(2).Infof("[store]%s publish %s\n", s.name, tag)

	s.mu.Lock()
	s.state = next
	s.mu.Unlock()

	if s.equal != nil && s.equal(prev, next) {
		glog.V(2).Infof("[store]%s publish %s unchanged, notify skipped\n", s.name, tag)
		return nil
	}
	s.notify()
	return nil
}

// Notify invokes every subscribed listener with the current state, in
// subscription order. The listener set is captured before the first call, so
// listeners added or removed during the cycle only affect later cycles.
//
// Notify holds the same guard as Publish: it fails with ErrPublishInProgress
// while a publish is running, and a listener publishing during the cycle gets
// ErrPublishInProgress.
func (s *Store[S, A]) Notify() error {
	s.mu.Lock()
	if s.publishing {
		s.mu.Unlock()
		glog.V(2).Infof("[store]%s notify rejected, cycle in progress\n", s.name)
		return ErrPublishInProgress
	}
	s.publishing = true
	s.mu.Unlock()
	defer s.release()

	s.notify()
	return nil
}

func (s *Store[S, A]) release() {
	s.mu.Lock()
	s.publishing = false
	s.mu.Unlock()
}

func (s *Store[S, A]) notify() {
	s.mu.Lock()
	state := s.state
	snapshot := slices.Clone(s.listeners)
	s.mu.Unlock()

	start := time.Now()
	for _, l := range snapshot {
		l.OnState(state)
	}
	if s.observer != nil {
		s.observer.OnNotify(s.name, len(snapshot), time.Since(start))
	}
	glog.V(2).Infof("[store]%s notify listeners = %d\n", s.name, len(snapshot))
	if glog.V(3) {
		glog.Infof("[store]%s state = %+v\n", s.name, state)
	}
}

// Subscribe adds l to the listener set. Adding a listener twice is a no-op.
func (s *Store[S, A]) Subscribe(l Listener[S]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.Contains(s.listeners, l) {
		return
	}
	s.listeners = append(s.listeners, l)
}

// Unsubscribe removes l from the listener set. Removing an absent listener
// is a no-op.
func (s *Store[S, A]) Unsubscribe(l Listener[S]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.Index(s.listeners, l); i >= 0 {
		s.listeners = slices.Delete(s.listeners, i, i+1)
	}
}

// ReplaceReducer swaps the active reducer. The current state is kept.
func (s *Store[S, A]) ReplaceReducer(reducer Reducer[S, A]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reducer = reducer
}
