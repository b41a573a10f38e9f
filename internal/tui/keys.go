package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Inc    key.Binding
	Add    key.Binding
	Bogus  key.Binding
	Create key.Binding
	Drop   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev")),
		Inc:    key.NewBinding(key.WithKeys("+", " ", "enter"), key.WithHelp("+", "inc")),
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Bogus:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "bogus action")),
		Create: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new instance")),
		Drop:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "unmount")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) bindings() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Inc, k.Add, k.Bogus, k.Create, k.Drop, k.Quit}
}

// footer renders the key hints as one status bar.
func (k keyMap) footer() string {
	parts := make([]string, 0, len(k.bindings()))
	for _, b := range k.bindings() {
		h := b.Help()
		parts = append(parts, helpKeyStyle.Render(h.Key)+" "+helpDescStyle.Render(h.Desc))
	}
	return footerStyle.Render(strings.Join(parts, "  "))
}
