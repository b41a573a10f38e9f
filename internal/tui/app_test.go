package tui

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/cinnamon/internal/counter"
	"github.com/jask/cinnamon/internal/flux"
	"github.com/jask/cinnamon/internal/instance"
)

func runeKey(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func newTestApp(t *testing.T) (*App, Stores) {
	t.Helper()

	r := instance.New(counter.Reduce)
	stores := Stores{
		Counter:   flux.NewStore(0, counter.Reduce),
		Instances: flux.NewStore(instance.State[int]{"left": 5, "right": 10}, r.Apply),
		Instancer: r,
	}
	n := 0
	a := New(stores, Options{
		Step:  5,
		Views: []string{"left", "right", "left"},
		NewRef: func() string {
			n++
			return fmt.Sprintf("new%d", n)
		},
	})
	require.Nil(t, a.Init())
	t.Cleanup(a.Close)
	return a, stores
}

func send(a *App, msgs ...tea.Msg) {
	for _, m := range msgs {
		a.Update(m)
	}
}

func TestAppInitSubscribesEveryPanel(t *testing.T) {
	t.Parallel()

	a, stores := newTestApp(t)
	require.Equal(t, 1, stores.Counter.Len())
	require.Equal(t, 3, stores.Instances.Len())

	a.Close()
	require.Zero(t, stores.Counter.Len())
	require.Zero(t, stores.Instances.Len())
}

func TestAppIncrementsFocusedCounter(t *testing.T) {
	t.Parallel()

	a, stores := newTestApp(t)
	send(a, runeKey("+"), runeKey("+"))
	require.Equal(t, 2, stores.Counter.State())
	require.Contains(t, a.View(), "counter = 2")
	require.Equal(t, "counter: inc", a.Status())
}

func TestAppSharedInstanceViewsStayInSync(t *testing.T) {
	t.Parallel()

	a, stores := newTestApp(t)
	send(a, tea.KeyMsg{Type: tea.KeyTab}, runeKey("a"))

	require.Equal(t, instance.State[int]{"left": 10, "right": 10}, stores.Instances.State())
	require.Equal(t, 10, a.views[1].Output().Count)
	require.Equal(t, 10, a.views[3].Output().Count)
	require.Equal(t, 0, stores.Counter.State())

	send(a, tea.KeyMsg{Type: tea.KeyTab}, runeKey("+"))
	require.Equal(t, 2, a.focus)
	require.Equal(t, 11, stores.Instances.State()["right"])
}

func TestAppUnknownActionKeepsState(t *testing.T) {
	t.Parallel()

	a, stores := newTestApp(t)
	send(a, runeKey("+"), runeKey("x"))
	require.Equal(t, 1, stores.Counter.State())
	require.Contains(t, a.Status(), `unknown action "bogus"`)
	require.Contains(t, a.View(), "counter = 1")

	send(a, tea.KeyMsg{Type: tea.KeyTab}, runeKey("x"))
	require.Equal(t, instance.State[int]{"left": 5, "right": 10}, stores.Instances.State())
	require.Contains(t, a.Status(), "instance left")
}

func TestAppCreateInstance(t *testing.T) {
	t.Parallel()

	a, stores := newTestApp(t)
	send(a, runeKey("n"))
	require.Equal(t, 0, stores.Instances.State()["new1"])
	require.Equal(t, 4, stores.Instances.Len())
	require.Equal(t, len(a.views)-1, a.focus)
	require.Equal(t, "created instance new1", a.Status())

	send(a, runeKey("+"))
	require.Equal(t, 1, stores.Instances.State()["new1"])
	require.Contains(t, a.View(), "instance new1")
}

func TestAppUnmountDeactivates(t *testing.T) {
	t.Parallel()

	a, stores := newTestApp(t)
	send(a, tea.KeyMsg{Type: tea.KeyTab})
	dropped := a.views[1]
	send(a, runeKey("d"))

	require.False(t, dropped.Active())
	require.Equal(t, 2, stores.Instances.Len())
	require.Len(t, a.views, 3)

	require.NoError(t, stores.Instances.Publish(stores.Instancer.Reduce("left", counter.Inc())))
	require.Equal(t, 5, dropped.Output().Count)
	require.Equal(t, 6, a.views[2].Output().Count)
}

func TestAppUnmountEverything(t *testing.T) {
	t.Parallel()

	a, stores := newTestApp(t)
	for range 4 {
		send(a, runeKey("d"))
	}
	require.Empty(t, a.views)
	require.Zero(t, stores.Counter.Len())
	require.Zero(t, stores.Instances.Len())
	require.Contains(t, a.View(), "(nothing mounted)")

	send(a, runeKey("+"), tea.KeyMsg{Type: tea.KeyTab}, runeKey("d"))
	require.Equal(t, 0, stores.Counter.State())
}

func TestAppFocusWraps(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t)
	send(a, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, 3, a.focus)
	send(a, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, 0, a.focus)
}

func TestAppQuit(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t)
	_, cmd := a.Update(runeKey("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestAppMissingInstance(t *testing.T) {
	t.Parallel()

	r := instance.New(counter.Reduce)
	stores := Stores{
		Counter:   flux.NewStore(0, counter.Reduce),
		Instances: flux.NewStore(instance.State[int]{}, r.Apply),
		Instancer: r,
	}
	a := New(stores, Options{Views: []string{"ghost"}})
	a.Init()
	t.Cleanup(a.Close)

	require.True(t, a.views[1].Output().Missing)
	require.Contains(t, a.View(), "no such instance")
	require.Equal(t, 1, a.opts.Step)
}

func TestAppAlternateKeys(t *testing.T) {
	t.Parallel()

	a, stores := newTestApp(t)
	send(a, runeKey("l"))
	require.Equal(t, 1, a.focus)
	send(a, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, 6, stores.Instances.State()["left"])

	send(a, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyLeft}, runeKey("h"))
	require.Equal(t, 0, a.focus)
}
