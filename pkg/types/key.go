package types

// Key identifies one keypress. Values use bubbletea's key names: printable
// characters are themselves ("q", "=", " "), special keys are named
// ("left", "enter", "pgup", "ctrl+c").
type Key string

// String implements fmt.Stringer so a Key can be matched against
// bubbles key bindings.
func (k Key) String() string {
	return string(k)
}

// Special keys referenced by the built-in key table and the pager.
const (
	KeySpace    Key = " "
	KeyEnter    Key = "enter"
	KeyLeft     Key = "left"
	KeyRight    Key = "right"
	KeyUp       Key = "up"
	KeyDown     Key = "down"
	KeyPageUp   Key = "pgup"
	KeyPageDown Key = "pgdown"
	KeyCtrlC    Key = "ctrl+c"
	KeyCtrlD    Key = "ctrl+d"
	KeyCtrlL    Key = "ctrl+l"
)
