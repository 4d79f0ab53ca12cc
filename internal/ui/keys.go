package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Escape     key.Binding

	// View switching
	ViewGlobal      key.Binding
	ViewGenre       key.Binding
	ViewLeaderboard key.Binding
	ViewMine        key.Binding
	ViewLiked       key.Binding

	// Feed actions
	CycleGenre key.Binding
	Like       key.Binding
	New        key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Open       key.Binding
	Refresh    key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Editor
	NextField key.Binding
	Save      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next view"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous view"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back"),
		),

		ViewGlobal: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Global feed"),
		),
		ViewGenre: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Genre feed"),
		),
		ViewLeaderboard: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Leaderboard"),
		),
		ViewMine: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "My poems"),
		),
		ViewLiked: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "Liked poems"),
		),

		CycleGenre: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "Cycle genre filter"),
		),
		Like: key.NewBinding(
			key.WithKeys("l", " "),
			key.WithHelp("l", "Like/unlike"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "New poem"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Edit poem"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Delete poem"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open poem"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh view"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "Up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "Down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "Top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Bottom"),
		),

		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next field"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Save"),
		),
	}
}
