package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up         key.Binding
	down       key.Binding
	enter      key.Binding
	esc        key.Binding
	tab        key.Binding
	backtab    key.Binding
	refresh    key.Binding
	clearError key.Binding
	tickets    key.Binding
	logout     key.Binding
	copyID     key.Binding
	role       key.Binding
}

var keys = keyMap{
	up:         key.NewBinding(key.WithKeys("up", "k")),
	down:       key.NewBinding(key.WithKeys("down", "j")),
	enter:      key.NewBinding(key.WithKeys("enter")),
	esc:        key.NewBinding(key.WithKeys("esc")),
	tab:        key.NewBinding(key.WithKeys("tab")),
	backtab:    key.NewBinding(key.WithKeys("shift+tab")),
	refresh:    key.NewBinding(key.WithKeys("r")),
	clearError: key.NewBinding(key.WithKeys("c")),
	tickets:    key.NewBinding(key.WithKeys("t")),
	logout:     key.NewBinding(key.WithKeys("l")),
	copyID:     key.NewBinding(key.WithKeys("ctrl+y")),
	role:       key.NewBinding(key.WithKeys("ctrl+r")),
}
