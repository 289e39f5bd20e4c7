package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Enter     key.Binding
	Escape    key.Binding
	Quit      key.Binding
	Dashboard key.Binding
	Stop      key.Binding
	Clear     key.Binding
	ClearHost key.Binding
	Theme     key.Binding
	Help      key.Binding
}

// DefaultKeyMap provides the default set of key bindings.
var DefaultKeyMap = KeyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "down")),
	Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Escape:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Dashboard: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dashboards")),
	Stop:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop engine")),
	Clear:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear history")),
	ClearHost: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear device history")),
	Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "next theme")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}
