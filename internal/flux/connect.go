package flux

import (
	"sync"

	"github.com/golang/glog"
)

// RenderFunc renders a view from its props, the store state and the store's
// publish handle. It must be pure; publish is meant to be called later, from
// event handlers captured in the output.
type RenderFunc[P, S, A, V any] func(props P, state S, publish Publish[A]) V

// ConnectOption configures a Connector.
type ConnectOption[V any] func(*connectOptions[V])

type connectOptions[V any] struct {
	onRender func(V)
}

// WithOnRender registers fn to run after every render of every connection.
func WithOnRender[V any](fn func(V)) ConnectOption[V] {
	return func(o *connectOptions[V]) {
		o.onRender = fn
	}
}

// Connector binds a store to a render function. Mount creates view instances.
type Connector[P, S, A, V any] struct {
	store    *Store[S, A]
	render   RenderFunc[P, S, A, V]
	onRender func(V)
}

// Connect binds store and render.
func Connect[P, S, A, V any](store *Store[S, A], render RenderFunc[P, S, A, V], opts ...ConnectOption[V]) *Connector[P, S, A, V] {
	var o connectOptions[V]
	for _, opt := range opts {
		opt(&o)
	}
	return &Connector[P, S, A, V]{
		store:    store,
		render:   render,
		onRender: o.onRender,
	}
}

// Store returns the bound store.
func (c *Connector[P, S, A, V]) Store() *Store[S, A] { return c.store }

// Mount creates an inactive view instance with the given props.
func (c *Connector[P, S, A, V]) Mount(props P) *Connection[P, S, A, V] {
	return &Connection[P, S, A, V]{connector: c, props: props}
}

// Connection is one view instance. The hosting view layer calls Activate when
// the instance is mounted and Deactivate exactly once when it is torn down.
// While active it holds exactly one store subscription.
type Connection[P, S, A, V any] struct {
	connector *Connector[P, S, A, V]
	props     P

	mu       sync.Mutex
	listener *connListener[P, S, A, V]
	state    S
	output   V
	renders  int
}

// connListener gets a fresh identity on every activation so a listener from
// an earlier activation can never re-render the connection.
type connListener[P, S, A, V any] struct {
	conn *Connection[P, S, A, V]
}

func (l *connListener[P, S, A, V]) OnState(state S) {
	l.conn.update(l, state)
}

// Activate captures the current state, renders, and subscribes to the store.
// Activating an active connection is a no-op.
func (c *Connection[P, S, A, V]) Activate() {
	c.mu.Lock()
	if c.listener != nil {
		c.mu.Unlock()
		return
	}
	l := &connListener[P, S, A, V]{conn: c}
	c.listener = l
	c.mu.Unlock()

	// A panicking render leaves the connection inactive so Activate can be retried.
	subscribed := false
	defer func() {
		if subscribed {
			return
		}
		c.mu.Lock()
		if c.listener == l {
			c.listener = nil
		}
		c.mu.Unlock()
	}()

	store := c.connector.store
	c.rerender(store.State())
	store.Subscribe(l)
	subscribed = true
	glog.V(2).Infof("[connect]%s activate listeners = %d\n", store.Name(), store.Len())
}

// Deactivate unsubscribes from the store. No render happens afterwards, even
// for a notification cycle that started before the call. Deactivating an
// inactive connection is a no-op.
func (c *Connection[P, S, A, V]) Deactivate() {
	c.mu.Lock()
	l := c.listener
	c.listener = nil
	c.mu.Unlock()
	if l == nil {
		return
	}

	store := c.connector.store
	store.Unsubscribe(l)
	glog.V(2).Infof("[connect]%s deactivate listeners = %d\n", store.Name(), store.Len())
}

// Active reports whether the connection is subscribed.
func (c *Connection[P, S, A, V]) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listener != nil
}

// Props returns the props the connection was mounted with.
func (c *Connection[P, S, A, V]) Props() P { return c.props }

// State returns the state used by the latest render.
func (c *Connection[P, S, A, V]) State() S {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Output returns the latest render output.
func (c *Connection[P, S, A, V]) Output() V {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.output
}

// Renders returns how many times the connection rendered.
func (c *Connection[P, S, A, V]) Renders() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renders
}

func (c *Connection[P, S, A, V]) update(from *connListener[P, S, A, V], state S) {
	c.mu.Lock()
	current := c.listener == from
	c.mu.Unlock()
	if !current {
		return
	}
	c.rerender(state)
}

func (c *Connection[P, S, A, V]) rerender(state S) {
	out := c.connector.render(c.props, state, c.connector.store.Publish)

	c.mu.Lock()
	c.state = state
	c.output = out
	c.renders++
	c.mu.Unlock()

	if c.connector.onRender != nil {
		c.connector.onRender(out)
	}
}
