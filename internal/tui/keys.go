package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
	Help     key.Binding
	Generate key.Binding
	Cancel   key.Binding
	Add      key.Binding
	Priority key.Binding
	Delete   key.Binding
	Hours    key.Binding
	Exam     key.Binding
	Budget   key.Binding
	Edit     key.Binding
	NextItem key.Binding
	PrevItem key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Generate: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "generate"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel generation"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add subject"),
		),
		Priority: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "cycle priority"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Hours: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "daily hours"),
		),
		Exam: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "add exam"),
		),
		Budget: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "budgets"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		NextItem: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next session"),
		),
		PrevItem: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev session"),
		),
	}
}
