package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// InputModel is a one-line free-text prompt with a default value.
type InputModel struct {
	prompt    string
	def       string
	input     textinput.Model
	cancelled bool
	done      bool
}

// NewInput creates a text input for the given prompt. An empty submission
// falls back to def.
func NewInput(prompt, def string) InputModel {
	ti := textinput.New()
	ti.Placeholder = def
	ti.Focus()
	ti.CharLimit = 120
	ti.Width = 48

	return InputModel{prompt: prompt, def: def, input: ti}
}

func (m InputModel) Init() tea.Cmd { return textinput.Blink }

func (m InputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			m.done = true
			return m, tea.Quit
		case "esc", "ctrl+c":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m InputModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s\n%s\n%s", styles.title.Render(m.prompt), m.input.View(), styles.help.Render("enter accept • esc cancel"))
}

// Value returns the entered text, or the default when left empty.
func (m InputModel) Value() string {
	if v := m.input.Value(); v != "" {
		return v
	}
	return m.def
}

// Cancelled reports whether the operator backed out.
func (m InputModel) Cancelled() bool { return m.cancelled }
