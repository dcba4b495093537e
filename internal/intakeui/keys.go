package intakeui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the ticket form.
type KeyMap struct {
	// Focus movement between fields.
	Next key.Binding
	Prev key.Binding

	// Issue type selection, active while the select has focus.
	OptionNext key.Binding
	OptionPrev key.Binding

	// Press is enter on the submit button.
	Press  key.Binding
	Submit key.Binding
	Quit   key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-tab", "previous field"),
	),
	OptionNext: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→", "next issue type"),
	),
	OptionPrev: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←", "previous issue type"),
	),
	Press: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "press button"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("C-s", "submit"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "quit"),
	),
}
