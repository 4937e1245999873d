package tui

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	Quit,
	Help,
	NextView,
	PrevView,
	Language,
	Up,
	Down,
	NextField,
	PrevField,
	Left,
	Right,
	Edit,
	Cancel,
	AddShallow,
	AddDeep,
	AddFinisher,
	RemoveRound,
	ToggleTimer,
	ResetTimer,
	CommitTimer,
	Save,
	Reset,
	Export,
	Copy,
	Load,
	Delete,
	Filter,
	Yes,
	No key.Binding
}

// ShortHelp implements help.KeyMap.
func (k keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevView, k.NextView, k.Language, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextField, k.PrevField, k.Edit},
		{k.AddShallow, k.AddDeep, k.AddFinisher, k.RemoveRound},
		{k.ToggleTimer, k.ResetTimer, k.CommitTimer},
		{k.Save, k.Export, k.Copy, k.Reset},
		{k.Load, k.Delete, k.Filter},
	}
}

func defaultKeymap() keymap {
	return keymap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		NextView: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous view"),
		),
		Language: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "language"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("⇧tab", "previous field"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "previous option"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "next option"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "edit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		AddShallow: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "add shallow round"),
		),
		AddDeep: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "add deep round"),
		),
		AddFinisher: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "add finisher round"),
		),
		RemoveRound: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "remove round"),
		),
		ToggleTimer: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "start/pause timer"),
		),
		ResetTimer: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "reset timer"),
		),
		CommitTimer: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "set total time"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save"),
		),
		Reset: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reset form"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export PDF"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy"),
		),
		Load: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in log"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "cancel"),
		),
	}
}
