package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

var _ list.Item = choiceItem{}

// choiceItem wraps a plain string choice to implement [list.Item].
type choiceItem struct {
	label string
	desc  string
}

func (i choiceItem) FilterValue() string { return i.label }
func (i choiceItem) Title() string       { return i.label }
func (i choiceItem) Description() string { return i.desc }

// SelectModel is a single-choice picker over a fixed list of labels.
type SelectModel struct {
	prompt    string
	list      list.Model
	choice    int
	cancelled bool
	done      bool
}

// NewSelect creates a picker for the given prompt and choice labels.
func NewSelect(prompt string, choices []string) SelectModel {
	items := make([]list.Item, len(choices))
	for i, c := range choices {
		items[i] = choiceItem{label: c}
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	l := list.New(items, delegate, 60, len(choices)+8)
	l.Title = prompt
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = styles.title

	return SelectModel{prompt: prompt, list: l, choice: -1}
}

func (m SelectModel) Init() tea.Cmd { return nil }

func (m SelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			m.choice = m.list.Index()
			m.done = true
			return m, tea.Quit
		case "q", "esc", "ctrl+c":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m SelectModel) View() string {
	if m.done {
		return ""
	}
	return m.list.View() + "\n" + styles.help.Render("enter select • esc cancel")
}

// Choice returns the selected index, or -1 when cancelled.
func (m SelectModel) Choice() int { return m.choice }

// Cancelled reports whether the operator backed out.
func (m SelectModel) Cancelled() bool { return m.cancelled }

// ConfirmModel is a yes/no question.
type ConfirmModel struct {
	prompt   string
	accepted bool
	done     bool
}

// NewConfirm creates a confirmation model for the given question.
func NewConfirm(prompt string) ConfirmModel {
	return ConfirmModel{prompt: prompt}
}

func (m ConfirmModel) Init() tea.Cmd { return nil }

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "y", "Y", "enter":
			m.accepted = true
			m.done = true
			return m, tea.Quit
		case "n", "N", "q", "esc", "ctrl+c":
			m.accepted = false
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ConfirmModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s\n", m.prompt, styles.help.Render("[y/N]"))
}

// Accepted reports whether the operator answered yes.
func (m ConfirmModel) Accepted() bool { return m.accepted }
