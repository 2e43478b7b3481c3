// Package tui provides a full-screen game picker as an alternative to the
// line-based chooser.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines the picker keybindings for a mode ("vim" or "standard")
type KeyMap struct {
	mode string

	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Home     key.Binding
	End      key.Binding
	Select   key.Binding
	Filter   key.Binding
	Cancel   key.Binding
	Quit     key.Binding
}

// NewKeyMap creates a new keymap for the given mode. Unknown modes fall back to vim.
func NewKeyMap(mode string) *KeyMap {
	mode = strings.ToLower(mode)
	if mode != "standard" {
		mode = "vim"
	}

	km := &KeyMap{
		mode:     mode,
		Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		PrevPage: key.NewBinding(key.WithKeys("left", "pgup", "<"), key.WithHelp("←/<", "previous page")),
		NextPage: key.NewBinding(key.WithKeys("right", "pgdown", ">"), key.WithHelp("→/>", "next page")),
		Home:     key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
		End:      key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
		Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Filter:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear filter")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "exit")),
	}

	if mode == "vim" {
		km.Up = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k/↑", "up"))
		km.Down = key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/↓", "down"))
		km.PrevPage = key.NewBinding(key.WithKeys("left", "h", "pgup", "<"), key.WithHelp("h/<", "previous page"))
		km.NextPage = key.NewBinding(key.WithKeys("right", "l", "pgdown", ">"), key.WithHelp("l/>", "next page"))
		km.Home = key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first"))
		km.End = key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last"))
	}
	return km
}

// Mode returns the current keybinding mode
func (k *KeyMap) Mode() string {
	return k.mode
}

// IsUp returns true if the key moves the cursor up
func (k *KeyMap) IsUp(msg tea.KeyMsg) bool { return key.Matches(msg, k.Up) }

// IsDown returns true if the key moves the cursor down
func (k *KeyMap) IsDown(msg tea.KeyMsg) bool { return key.Matches(msg, k.Down) }

// IsPrevPage returns true if the key shows the previous page
func (k *KeyMap) IsPrevPage(msg tea.KeyMsg) bool { return key.Matches(msg, k.PrevPage) }

// IsNextPage returns true if the key shows the next page
func (k *KeyMap) IsNextPage(msg tea.KeyMsg) bool { return key.Matches(msg, k.NextPage) }

// IsHome returns true if the key should go to the first game
func (k *KeyMap) IsHome(msg tea.KeyMsg) bool { return key.Matches(msg, k.Home) }

// IsEnd returns true if the key should go to the last game
func (k *KeyMap) IsEnd(msg tea.KeyMsg) bool { return key.Matches(msg, k.End) }

// IsConfirm returns true if the key selects the highlighted game
func (k *KeyMap) IsConfirm(msg tea.KeyMsg) bool { return key.Matches(msg, k.Select) }

// IsSearch returns true if the key should focus the filter
func (k *KeyMap) IsSearch(msg tea.KeyMsg) bool { return key.Matches(msg, k.Filter) }

// IsCancel returns true if the key is a cancel/back key
func (k *KeyMap) IsCancel(msg tea.KeyMsg) bool { return key.Matches(msg, k.Cancel) }

// IsQuit returns true if the key is a quit key
func (k *KeyMap) IsQuit(msg tea.KeyMsg) bool { return key.Matches(msg, k.Quit) }

// ShortHelp returns the one-line help shown under the picker
func (k *KeyMap) ShortHelp() string {
	bindings := []key.Binding{k.Up, k.Down, k.PrevPage, k.NextPage, k.Select, k.Filter, k.Quit}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	return strings.Join(parts, "  ")
}
