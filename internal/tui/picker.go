package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"glink/internal/prompt"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69")).MarginBottom(1)
	itemStyle     = lipgloss.NewStyle().PaddingLeft(2)
	selectedStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("205")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Picker is a bubbletea model choosing one entry of a list, one page at a time.
// Paging and selection go through prompt.Pager, so the picker accepts exactly
// what the line chooser accepts.
type Picker struct {
	title    string
	choices  []string
	pageSize int
	keys     *KeyMap

	pager  prompt.Pager
	empty  bool // Filter matched nothing
	cursor int  // Index into the visible page

	filter    textinput.Model
	filtering bool

	choice    string
	cancelled bool
	width     int
}

// NewPicker creates a picker over choices. choices must not be empty.
func NewPicker(title string, choices []string, pageSize int, keys *KeyMap) (Picker, error) {
	pager, err := prompt.NewPager(choices, pageSize)
	if err != nil {
		return Picker{}, err
	}
	if keys == nil {
		keys = NewKeyMap("vim")
	}

	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "filter games"

	return Picker{
		title:    strings.TrimSpace(title),
		choices:  choices,
		pageSize: pageSize,
		keys:     keys,
		pager:    pager,
		filter:   ti,
		width:    80,
	}, nil
}

// Choice returns the selected entry, empty until one is selected
func (p Picker) Choice() string {
	return p.choice
}

// Cancelled reports whether the operator left without choosing
func (p Picker) Cancelled() bool {
	return p.cancelled
}

// Cursor returns the absolute index of the highlighted entry among the visible choices
func (p Picker) Cursor() int {
	if p.empty {
		return -1
	}
	return p.pager.Offset() + p.cursor
}

// Init implements tea.Model
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if p.filtering {
			return p.handleFilterKey(msg)
		}
		return p.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		p.width = msg.Width
		return p, nil
	}

	return p, nil
}

func (p Picker) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		p.filtering = false
		p.filter.Blur()
		return p, nil
	case tea.KeyEsc:
		p.filtering = false
		p.filter.Blur()
		p.filter.SetValue("")
		p.refilter()
		return p, nil
	case tea.KeyCtrlC:
		p.cancelled = true
		return p, tea.Quit
	}

	var cmd tea.Cmd
	p.filter, cmd = p.filter.Update(msg)
	p.refilter()
	return p, cmd
}

func (p Picker) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case p.keys.IsQuit(msg):
		p.cancelled = true
		return p, tea.Quit

	case p.keys.IsCancel(msg):
		if p.filter.Value() == "" {
			p.cancelled = true
			return p, tea.Quit
		}
		p.filter.SetValue("")
		p.refilter()
		return p, nil

	case p.keys.IsSearch(msg):
		p.filtering = true
		cmd := p.filter.Focus()
		return p, cmd
	}

	if p.empty {
		return p, nil
	}

	switch {
	case p.keys.IsUp(msg):
		if p.cursor > 0 {
			p.cursor--
		} else if p.pager.HasPrev() {
			p.apply(prompt.KeyPrev)
			p.cursor = len(p.pager.Page().Entries) - 1
		}

	case p.keys.IsDown(msg):
		if p.cursor < len(p.pager.Page().Entries)-1 {
			p.cursor++
		} else if p.pager.HasNext() {
			p.apply(prompt.KeyNext)
			p.cursor = 0
		}

	case p.keys.IsPrevPage(msg):
		if p.apply(prompt.KeyPrev) {
			p.cursor = 0
		}

	case p.keys.IsNextPage(msg):
		if p.apply(prompt.KeyNext) {
			p.cursor = 0
		}

	case p.keys.IsHome(msg):
		for p.apply(prompt.KeyPrev) {
		}
		p.cursor = 0

	case p.keys.IsEnd(msg):
		for p.apply(prompt.KeyNext) {
		}
		p.cursor = len(p.pager.Page().Entries) - 1

	case p.keys.IsConfirm(msg):
		entry := p.pager.Page().Entries[p.cursor]
		_, res := p.pager.Apply(strconv.Itoa(entry.Number))
		if res.Step == prompt.StepSelected {
			p.choice = res.Choice
			return p, tea.Quit
		}
	}

	return p, nil
}

// apply feeds a paging key to the pager and reports whether the page changed
func (p *Picker) apply(input string) bool {
	next, res := p.pager.Apply(input)
	if res.Step != prompt.StepPaged {
		return false
	}
	p.pager = next
	return true
}

func (p *Picker) refilter() {
	q := strings.ToLower(p.filter.Value())
	var visible []string
	for _, c := range p.choices {
		if strings.Contains(strings.ToLower(c), q) {
			visible = append(visible, c)
		}
	}

	p.cursor = 0
	pager, err := prompt.NewPager(visible, p.pageSize)
	p.empty = err != nil
	if err == nil {
		p.pager = pager
	}
}

// View implements tea.Model
func (p Picker) View() string {
	var b strings.Builder

	title := p.title
	if title == "" {
		title = "Choose"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	if p.filtering || p.filter.Value() != "" {
		b.WriteString(p.filter.View())
		b.WriteString("\n\n")
	}

	if p.empty {
		b.WriteString(dimStyle.Render("  No games match the filter"))
		b.WriteString("\n")
	} else {
		page := p.pager.Page()
		pad := len(strconv.Itoa(page.Entries[len(page.Entries)-1].Number))
		for i, e := range page.Entries {
			line := fmt.Sprintf("%*d. %s", pad, e.Number, e.Choice)
			if i == p.cursor {
				b.WriteString(selectedStyle.Render("▸ " + line))
			} else {
				b.WriteString(itemStyle.Render("  " + line))
			}
			b.WriteString("\n")
		}

		size := p.pager.PageSize()
		pages := (p.pager.Len() + size - 1) / size
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("Page %d/%d, %d games", p.pager.Offset()/size+1, pages, p.pager.Len())))
		b.WriteString("\n")
	}

	b.WriteString(dimStyle.Render(p.keys.ShortHelp()))
	b.WriteString("\n")
	return b.String()
}
