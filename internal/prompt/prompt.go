// Package prompt defines the interactive choice points of a sync run.
//
// The Prompter interface is injected into the resolver and the orchestrator
// so both can be exercised in tests with a scripted responder instead of a
// real terminal.
package prompt

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"cardsync/internal/shared"
	"cardsync/internal/ui"
)

// Prompter asks the operator for decisions.
type Prompter interface {
	// Confirm asks a yes/no question. Backing out counts as no.
	Confirm(message string) (bool, error)

	// SelectOne presents choices and returns the selected index.
	// Fails with shared.ErrCancelled when the operator backs out.
	SelectOne(message string, choices []string) (int, error)

	// FreeText asks for a line of text, returning def when left empty.
	// Fails with shared.ErrCancelled when the operator backs out.
	FreeText(message, def string) (string, error)
}

// TerminalPrompter implements [Prompter] with bubbletea programs on the
// controlling terminal.
type TerminalPrompter struct {
	output io.Writer
}

// NewTerminalPrompter creates a prompter writing to output (nil = stdout).
func NewTerminalPrompter(output io.Writer) *TerminalPrompter {
	return &TerminalPrompter{output: output}
}

func (p *TerminalPrompter) run(model tea.Model) (tea.Model, error) {
	var opts []tea.ProgramOption
	if p.output != nil {
		opts = append(opts, tea.WithOutput(p.output))
	}

	final, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		return nil, fmt.Errorf("prompt failed: %w", err)
	}
	return final, nil
}

// Confirm asks a yes/no question.
func (p *TerminalPrompter) Confirm(message string) (bool, error) {
	final, err := p.run(ui.NewConfirm(message))
	if err != nil {
		return false, err
	}
	return final.(ui.ConfirmModel).Accepted(), nil
}

// SelectOne presents choices and returns the selected index.
func (p *TerminalPrompter) SelectOne(message string, choices []string) (int, error) {
	if len(choices) == 0 {
		return 0, fmt.Errorf("%w: no choices to select from", shared.ErrInvalidInput)
	}

	final, err := p.run(ui.NewSelect(message, choices))
	if err != nil {
		return 0, err
	}

	m := final.(ui.SelectModel)
	if m.Cancelled() || m.Choice() < 0 {
		return 0, shared.ErrCancelled
	}
	return m.Choice(), nil
}

// FreeText asks for a line of text.
func (p *TerminalPrompter) FreeText(message, def string) (string, error) {
	final, err := p.run(ui.NewInput(message, def))
	if err != nil {
		return "", err
	}

	m := final.(ui.InputModel)
	if m.Cancelled() {
		return "", shared.ErrCancelled
	}
	return m.Value(), nil
}
