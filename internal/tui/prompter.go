package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"glink/internal/domain"
	"glink/internal/prompt"
)

// Prompter chooses with the full-screen picker and confirms on the line prompt
type Prompter struct {
	in   io.Reader
	out  io.Writer
	keys *KeyMap
	line *prompt.Terminal
	opts []tea.ProgramOption
}

// NewPrompter creates a prompter. line handles yes/no questions and must read
// from the same input as the picker.
func NewPrompter(in io.Reader, out io.Writer, keybindings string, line *prompt.Terminal, opts ...tea.ProgramOption) *Prompter {
	return &Prompter{
		in:   in,
		out:  out,
		keys: NewKeyMap(keybindings),
		line: line,
		opts: opts,
	}
}

// Choose runs the picker. A single choice is picked without showing it.
func (p *Prompter) Choose(title string, choices []string, pageSize int) (string, error) {
	if len(choices) == 1 {
		fmt.Fprintf(p.out, "Only one option available. Choosing %s\n", choices[0])
		return choices[0], nil
	}

	picker, err := NewPicker(title, choices, pageSize, p.keys)
	if err != nil {
		return "", err
	}

	opts := append([]tea.ProgramOption{tea.WithInput(p.in), tea.WithOutput(p.out)}, p.opts...)
	final, err := tea.NewProgram(picker, opts...).Run()
	if err != nil {
		return "", fmt.Errorf("running picker: %w", err)
	}

	result := final.(Picker)
	if result.Cancelled() || result.Choice() == "" {
		fmt.Fprintln(p.out, "Exiting...")
		return "", domain.ErrCancelled
	}
	return result.Choice(), nil
}

// Confirm asks a yes/no question on the line prompt
func (p *Prompter) Confirm(question string, def prompt.Default) (bool, error) {
	return p.line.Confirm(question, def)
}
