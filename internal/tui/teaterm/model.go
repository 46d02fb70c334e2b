package teaterm

import (
	"vlcrc/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
)

// model shows whatever frame it was last sent and forwards input to the
// Terminal.
type model struct {
	t     *Terminal
	frame string
}

// Init implements tea.Model
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.t.deliver(keyFor(msg))
	case tea.WindowSizeMsg:
		m.t.resize(msg.Height, msg.Width)
		// A redraw key makes the dispatcher repaint at the new size.
		m.t.deliver(types.KeyCtrlL)
	case frameMsg:
		m.frame = string(msg)
	}
	return m, nil
}

// View implements tea.Model
func (m model) View() string {
	return m.frame
}

// keyFor names a key the way the key table does.
func keyFor(msg tea.KeyMsg) types.Key {
	if msg.Type == tea.KeySpace {
		return types.KeySpace
	}
	return types.Key(msg.String())
}
