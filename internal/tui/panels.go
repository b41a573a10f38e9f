package tui

import (
	"fmt"

	"github.com/jask/cinnamon/internal/counter"
	"github.com/jask/cinnamon/internal/flux"
	"github.com/jask/cinnamon/internal/instance"
)

// Section headings, in display order.
const (
	sectionCounter = "Counter"
	sectionMulti   = "Multi Counter"
)

// bogusType is published by the bogus key to show the unknown action path.
const bogusType = "bogus"

// Panel is the render output of a connected counter view. The handlers close
// over the publish handle the panel was rendered with.
type Panel struct {
	Section string
	Title   string
	Count   int
	Missing bool

	Inc   func() error
	Add   func() error
	Bogus func() error
}

// CounterProps configures the single counter panel.
type CounterProps struct {
	Title string
	Step  int
}

// CounterPanel renders the single counter store.
func CounterPanel(props CounterProps, state counter.State, publish flux.Publish[counter.Action]) Panel {
	return Panel{
		Section: sectionCounter,
		Title:   props.Title,
		Count:   state,
		Inc:     func() error { return publish(counter.Inc()) },
		Add:     func() error { return publish(counter.Add(props.Step)) },
		Bogus:   func() error { return publish(counter.Action{Type: bogusType}) },
	}
}

// InstanceProps selects the instance a panel shows.
type InstanceProps struct {
	Ref  string
	Step int
}

// InstanceAction is the action type of the multi counter store.
type InstanceAction = instance.Action[counter.State, counter.Action]

// InstancePanel returns the render function for one instance of the multi
// counter store. Actions are routed through r so they reach only Ref.
func InstancePanel(r *instance.Reducer[counter.State, counter.Action]) flux.RenderFunc[InstanceProps, instance.State[counter.State], InstanceAction, Panel] {
	return func(props InstanceProps, state instance.State[counter.State], publish flux.Publish[InstanceAction]) Panel {
		count, ok := state[props.Ref]
		return Panel{
			Section: sectionMulti,
			Title:   fmt.Sprintf("instance %s", props.Ref),
			Count:   count,
			Missing: !ok,
			Inc:     func() error { return publish(r.Reduce(props.Ref, counter.Inc())) },
			Add:     func() error { return publish(r.Reduce(props.Ref, counter.Add(props.Step))) },
			Bogus:   func() error { return publish(r.Reduce(props.Ref, counter.Action{Type: bogusType})) },
		}
	}
}
