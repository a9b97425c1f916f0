package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Next        key.Binding
	Prev        key.Binding
	Capture     key.Binding
	Restore     key.Binding
	Remove      key.Binding
	NextProfile key.Binding
	PrevProfile key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("shift+down"),
			key.WithHelp("shift+↓", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+up"),
			key.WithHelp("shift+↑", "prev"),
		),
		Capture: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("shift+n", "save"),
		),
		Restore: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("shift+l", "load"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "remove"),
		),
		NextProfile: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next profile"),
		),
		PrevProfile: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev profile"),
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

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Capture, k.Restore, k.Next, k.Prev, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Capture, k.Restore, k.Remove},
		{k.Next, k.Prev},
		{k.NextProfile, k.PrevProfile},
		{k.Help, k.Quit},
	}
}
