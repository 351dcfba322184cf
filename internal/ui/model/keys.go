package model

import "charm.land/bubbles/v2/key"

type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	Next      key.Binding
	Prev      key.Binding
	Pick      key.Binding
	PickAll   key.Binding
	UnpickAll key.Binding
	Sort      key.Binding

	// Global key maps
	Help key.Binding
	Quit key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "b"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "f"),
			key.WithHelp("pgdn", "page down"),
		),
		Next: key.NewBinding(
			key.WithKeys("j"),
			key.WithHelp("j", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("k"),
			key.WithHelp("k", "prev"),
		),
		Pick: key.NewBinding(
			key.WithKeys("space", "enter"),
			key.WithHelp("space", "pick"),
		),
		PickAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "pick all"),
		),
		UnpickAll: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "unpick all"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort by size"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements [help.KeyMap].
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Pick, k.Help, k.Quit}
}

// FullHelp implements [help.KeyMap].
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Next, k.Prev, k.Pick},
		{k.PickAll, k.UnpickAll, k.Sort},
		{k.Help, k.Quit},
	}
}
