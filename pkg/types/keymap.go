package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the control keys handled by the dispatcher itself, before
// the command table is consulted. Ctrl+C and Ctrl+D are bound directly so
// they quit even when the tty remaps intr and eof.
type KeyMap struct {
	Quit   key.Binding
	Redraw key.Binding
	Debug  key.Binding

	// Pager
	PageUp   key.Binding
	PageDown key.Binding
}

// DefaultKeyMap returns the standard control bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys(string(KeyCtrlC), string(KeyCtrlD), "q"),
			key.WithHelp("q/^C/^D", "quit menu program"),
		),
		Redraw: key.NewBinding(
			key.WithKeys(string(KeyCtrlL)),
			key.WithHelp("^L", "redraw"),
		),
		Debug: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "toggle debugging"),
		),
		PageUp: key.NewBinding(
			key.WithKeys(string(KeyPageUp)),
			key.WithHelp("PageUp", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys(string(KeyPageDown)),
			key.WithHelp("PageDown", "scroll down"),
		),
	}
}
