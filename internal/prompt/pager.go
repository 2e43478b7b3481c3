// Package prompt implements the operator prompts: a paginated single-choice
// list and a yes/no confirmation.
//
// The paging rules live in Pager, a value type whose Apply method maps one line
// of input to the next state. Terminal is the thin read/print loop around it.
package prompt

import (
	"errors"
	"strconv"
	"strings"
)

// ErrNoChoices is returned when a pager is built over an empty list
var ErrNoChoices = errors.New("no choices given")

// Input tokens understood by the pager besides entry numbers
const (
	KeyPrev = "<"
	KeyNext = ">"
	KeyExit = "q"
)

// Step says what a line of input did to the pager
type Step int

const (
	StepInvalid   Step = iota // Not a valid option on this page; ask again
	StepPaged                 // Moved to another page; redisplay
	StepSelected              // A choice was made
	StepCancelled             // The operator asked to exit
)

// Result is the outcome of applying one line of input
type Result struct {
	Step   Step
	Index  int    // Absolute index of the selection (StepSelected only)
	Choice string // The selected choice (StepSelected only)
}

// Entry is one numbered row of a page
type Entry struct {
	Number int // 1-based, absolute across pages
	Choice string
}

// Page is what the operator sees at the current offset
type Page struct {
	Entries []Entry
	HasPrev bool
	HasNext bool
}

// Pager holds the choices and the current page offset
type Pager struct {
	choices  []string
	pageSize int
	offset   int
}

// NewPager creates a pager. A pageSize <= 0 shows every choice on one page.
func NewPager(choices []string, pageSize int) (Pager, error) {
	if len(choices) == 0 {
		return Pager{}, ErrNoChoices
	}
	if pageSize <= 0 || pageSize > len(choices) {
		pageSize = len(choices)
	}
	return Pager{choices: choices, pageSize: pageSize}, nil
}

// Len returns the number of choices
func (p Pager) Len() int {
	return len(p.choices)
}

// PageSize returns the number of entries per page
func (p Pager) PageSize() int {
	return p.pageSize
}

// Offset returns the index of the first entry on the current page
func (p Pager) Offset() int {
	return p.offset
}

// HasPrev reports whether a previous page exists
func (p Pager) HasPrev() bool {
	return p.offset > 0
}

// HasNext reports whether more choices follow the current page
func (p Pager) HasNext() bool {
	return p.offset+p.pageSize < len(p.choices)
}

// Page returns the entries visible at the current offset
func (p Pager) Page() Page {
	end := min(p.offset+p.pageSize, len(p.choices))
	entries := make([]Entry, 0, end-p.offset)
	for i := p.offset; i < end; i++ {
		entries = append(entries, Entry{Number: i + 1, Choice: p.choices[i]})
	}
	return Page{Entries: entries, HasPrev: p.HasPrev(), HasNext: p.HasNext()}
}

// Apply maps a line of input to the next pager state.
// Navigation is only accepted when offered, and only numbers on the
// current page select.
func (p Pager) Apply(input string) (Pager, Result) {
	switch option := strings.ToLower(strings.TrimSpace(input)); option {
	case KeyExit:
		return p, Result{Step: StepCancelled}
	case KeyPrev:
		if !p.HasPrev() {
			return p, Result{Step: StepInvalid}
		}
		p.offset = max(p.offset-p.pageSize, 0)
		return p, Result{Step: StepPaged}
	case KeyNext:
		if !p.HasNext() {
			return p, Result{Step: StepInvalid}
		}
		p.offset += p.pageSize
		return p, Result{Step: StepPaged}
	default:
		// Only the numerals as listed select; "+1" and "01" do not
		n, err := strconv.Atoi(option)
		if err != nil || strconv.Itoa(n) != option {
			return p, Result{Step: StepInvalid}
		}
		idx := n - 1
		if idx < p.offset || idx >= min(p.offset+p.pageSize, len(p.choices)) {
			return p, Result{Step: StepInvalid}
		}
		return p, Result{Step: StepSelected, Index: idx, Choice: p.choices[idx]}
	}
}
