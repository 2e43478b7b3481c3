package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"glink/internal/domain"
)

// Default is the answer assumed when the operator just presses enter
type Default int

const (
	DefaultNone Default = iota // Empty input asks again
	DefaultYes
	DefaultNo
)

// Terminal reads operator input line by line and writes prompts.
// Both prompts share one buffered reader so lines are never lost between them.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal creates a terminal prompter over in and out
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// Choose asks the operator to pick one of choices, pageSize entries at a time.
// A single choice is picked without asking. Exiting, or running out of input,
// returns domain.ErrCancelled.
func (t *Terminal) Choose(prompt string, choices []string, pageSize int) (string, error) {
	pager, err := NewPager(choices, pageSize)
	if err != nil {
		return "", err
	}

	if pager.Len() == 1 {
		fmt.Fprintf(t.out, "Only one option available. Choosing %s\n", choices[0])
		return choices[0], nil
	}

	redraw := true
	for {
		if redraw {
			t.render(pager.Page())
		}

		line, err := t.readLine(prompt)
		if err != nil {
			return "", err
		}

		var res Result
		pager, res = pager.Apply(line)
		switch res.Step {
		case StepSelected:
			return res.Choice, nil
		case StepCancelled:
			fmt.Fprintln(t.out, "Exiting...")
			return "", domain.ErrCancelled
		}
		redraw = res.Step == StepPaged
	}
}

// Confirm asks a yes/no question. y/yes and n/no are accepted in any case.
func (t *Terminal) Confirm(question string, def Default) (bool, error) {
	yes, no := "y", "n"
	switch def {
	case DefaultYes:
		yes = "Y"
	case DefaultNo:
		no = "N"
	}
	prompt := fmt.Sprintf("%s? (%s/%s) ", question, yes, no)

	for {
		line, err := t.readLine(prompt)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		case "":
			switch def {
			case DefaultYes:
				return true, nil
			case DefaultNo:
				return false, nil
			}
		}
	}
}

func (t *Terminal) render(page Page) {
	last := page.Entries[len(page.Entries)-1].Number
	pad := len(strconv.Itoa(last))

	for _, e := range page.Entries {
		fmt.Fprintf(t.out, "%*d: %s\n", pad, e.Number, e.Choice)
	}
	if page.HasPrev {
		fmt.Fprintf(t.out, "%*s: Previous\n", pad, KeyPrev)
	}
	if page.HasNext {
		fmt.Fprintf(t.out, "%*s: Next\n", pad, KeyNext)
	}
	fmt.Fprintf(t.out, "%*s: Exit\n", pad, KeyExit)
}

// readLine prints prompt and returns one line without its newline.
// A final unterminated line is still returned; no input at all is a cancellation.
func (t *Terminal) readLine(prompt string) (string, error) {
	fmt.Fprint(t.out, prompt)

	line, err := t.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(t.out)
			return "", domain.ErrCancelled
		}
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
