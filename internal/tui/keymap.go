package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the calculator. It implements
// help.KeyMap.
type KeyMap struct {
	Evaluate       key.Binding
	Compare        key.Binding
	NextMultiplier key.Binding
	PrevMultiplier key.Binding
	HistoryPrev    key.Binding
	HistoryNext    key.Binding
	Clear          key.Binding
	Help           key.Binding
	Quit           key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Evaluate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "evaluate"),
		),
		Compare: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "compare all"),
		),
		NextMultiplier: key.NewBinding(
			key.WithKeys("ctrl+n", "tab"),
			key.WithHelp("ctrl+n", "next multiplier"),
		),
		PrevMultiplier: key.NewBinding(
			key.WithKeys("ctrl+p", "shift+tab"),
			key.WithHelp("ctrl+p", "previous multiplier"),
		),
		HistoryPrev: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "older expression"),
		),
		HistoryNext: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "newer expression"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel / clear"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Evaluate, k.Compare, k.NextMultiplier, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Evaluate, k.Compare, k.Clear},
		{k.NextMultiplier, k.PrevMultiplier},
		{k.HistoryPrev, k.HistoryNext},
		{k.Help, k.Quit},
	}
}
