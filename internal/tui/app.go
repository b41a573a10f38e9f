package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/golang/glog"
	"github.com/google/uuid"

	"github.com/jask/cinnamon/internal/counter"
	"github.com/jask/cinnamon/internal/flux"
	"github.com/jask/cinnamon/internal/instance"
)

const appName = "cinnamon"

// CounterStore is the store behind the single counter demo.
type CounterStore = flux.Store[counter.State, counter.Action]

// InstanceStore is the store behind the multi counter demo.
type InstanceStore = flux.Store[instance.State[counter.State], InstanceAction]

// Stores are the stores the app renders. The composition root owns them.
type Stores struct {
	Counter   *CounterStore
	Instances *InstanceStore
	Instancer *instance.Reducer[counter.State, counter.Action]
}

// Options configures the app.
type Options struct {
	// Step is the amount the add key publishes.
	Step int

	// Views lists the instance ref of each multi counter panel.
	Views []string

	// NewRef names instances created with the new instance key.
	NewRef func() string
}

// view is a mounted connection as the app sees it.
type view interface {
	Activate()
	Deactivate()
	Active() bool
	Output() Panel
}

// App ties the connected panels to bubbletea. Init activates every panel and
// Close deactivates them, so each mounted panel holds one store subscription
// while the program runs.
type App struct {
	stores   Stores
	opts     Options
	keys     keyMap
	counter  *flux.Connector[CounterProps, counter.State, counter.Action, Panel]
	multi    *flux.Connector[InstanceProps, instance.State[counter.State], InstanceAction, Panel]
	views    []view
	focus    int
	status   string
	statusOK bool
	width    int
}

// New mounts one counter panel and one panel per entry of opts.Views. The
// panels are inactive until Init.
func New(stores Stores, opts Options) *App {
	if opts.Step == 0 {
		opts.Step = 1
	}
	if opts.NewRef == nil {
		opts.NewRef = func() string { return uuid.NewString()[:8] }
	}

	a := &App{
		stores:  stores,
		opts:    opts,
		keys:    defaultKeyMap(),
		counter: flux.Connect(stores.Counter, CounterPanel),
		multi:   flux.Connect(stores.Instances, InstancePanel(stores.Instancer)),
	}
	a.views = append(a.views, a.counter.Mount(CounterProps{Title: "counter", Step: opts.Step}))
	for _, ref := range opts.Views {
		a.views = append(a.views, a.multi.Mount(InstanceProps{Ref: ref, Step: opts.Step}))
	}
	return a
}

// Init activates every mounted panel.
func (a *App) Init() tea.Cmd {
	for _, v := range a.views {
		v.Activate()
	}
	return nil
}

// Close deactivates every mounted panel. Call it once the program exits.
func (a *App) Close() {
	for _, v := range a.views {
		v.Deactivate()
	}
}

// Update handles one message.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(m, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(m, a.keys.Next):
			a.moveFocus(1)
		case key.Matches(m, a.keys.Prev):
			a.moveFocus(-1)
		case key.Matches(m, a.keys.Inc):
			a.run("inc", func(p Panel) func() error { return p.Inc })
		case key.Matches(m, a.keys.Add):
			a.run(fmt.Sprintf("add %d", a.opts.Step), func(p Panel) func() error { return p.Add })
		case key.Matches(m, a.keys.Bogus):
			a.run(bogusType, func(p Panel) func() error { return p.Bogus })
		case key.Matches(m, a.keys.Create):
			a.createInstance()
		case key.Matches(m, a.keys.Drop):
			a.unmountFocused()
		}
	}
	return a, nil
}

func (a *App) moveFocus(delta int) {
	if len(a.views) == 0 {
		return
	}
	a.focus = (a.focus + delta + len(a.views)) % len(a.views)
}

// run invokes one handler of the focused panel. Publish errors only change
// the status line.
func (a *App) run(name string, pick func(Panel) func() error) {
	if len(a.views) == 0 {
		return
	}
	p := a.views[a.focus].Output()
	fn := pick(p)
	if fn == nil {
		return
	}
	if err := fn(); err != nil {
		glog.V(1).Infof("[tui]%s %s error = %s\n", p.Title, name, err)
		a.setStatus(false, "%s: %s", p.Title, err)
		return
	}
	a.setStatus(true, "%s: %s", p.Title, name)
}

func (a *App) createInstance() {
	ref := a.opts.NewRef()
	if err := a.stores.Instances.Publish(a.stores.Instancer.Create(ref, 0)); err != nil {
		a.setStatus(false, "create %s: %s", ref, err)
		return
	}
	v := a.multi.Mount(InstanceProps{Ref: ref, Step: a.opts.Step})
	v.Activate()
	a.views = append(a.views, v)
	a.focus = len(a.views) - 1
	a.setStatus(true, "created instance %s", ref)
}

func (a *App) unmountFocused() {
	if len(a.views) == 0 {
		return
	}
	v := a.views[a.focus]
	v.Deactivate()
	a.views = append(a.views[:a.focus:a.focus], a.views[a.focus+1:]...)
	if a.focus >= len(a.views) && a.focus > 0 {
		a.focus--
	}
	a.setStatus(true, "unmounted %s", v.Output().Title)
}

func (a *App) setStatus(ok bool, format string, args ...any) {
	a.status = fmt.Sprintf(format, args...)
	a.statusOK = ok
}

// Status returns the current status line text.
func (a *App) Status() string { return a.status }

// View renders every mounted panel grouped by section.
func (a *App) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(appName))
	b.WriteString("\n")

	for _, section := range []string{sectionCounter, sectionMulti} {
		var boxes []string
		for i, v := range a.views {
			p := v.Output()
			if p.Section != section {
				continue
			}
			boxes = append(boxes, renderPanel(p, i == a.focus))
		}
		b.WriteString(sectionStyle.Render(section))
		b.WriteString("\n")
		if len(boxes) == 0 {
			b.WriteString(statusStyle.Render("(nothing mounted)"))
		} else {
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if a.status != "" {
		if a.statusOK {
			b.WriteString(statusStyle.Render(a.status))
		} else {
			b.WriteString(errorStyle.Render(a.status))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.keys.footer())
	return b.String()
}

func renderPanel(p Panel, focused bool) string {
	style := panelStyle
	if focused {
		style = focusedPanelStyle
	}
	value := countStyle.Render(fmt.Sprintf("counter = %d", p.Count))
	if p.Missing {
		value = missingStyle.Render("no such instance")
	}
	return style.Render(panelTitleStyle.Render(p.Title) + "\n" + value)
}
