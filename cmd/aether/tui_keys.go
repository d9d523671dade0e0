package main

import "github.com/charmbracelet/bubbles/key"

type editKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	MoveUp    key.Binding
	MoveDown  key.Binding
	Add       key.Binding
	Set       key.Binding
	Bind      key.Binding
	Delete    key.Binding
	Duplicate key.Binding
	Select    key.Binding
	Layout    key.Binding
	Undo      key.Binding
	Redo      key.Binding
	Save      key.Binding
	Code      key.Binding
	Issues    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func (k editKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Set, k.Delete, k.Undo, k.Save, k.Help, k.Quit}
}

func (k editKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.MoveUp, k.MoveDown, k.Select},
		{k.Add, k.Set, k.Bind, k.Delete, k.Duplicate, k.Layout},
		{k.Undo, k.Redo, k.Save, k.Code, k.Issues},
		{k.Help, k.Quit},
	}
}

var editKeys = editKeyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	MoveUp:    key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("K", "move up")),
	MoveDown:  key.NewBinding(key.WithKeys("shift+down", "J"), key.WithHelp("J", "move down")),
	Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Set:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "set prop")),
	Bind:      key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bind")),
	Delete:    key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
	Duplicate: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "duplicate")),
	Select:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
	Layout:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "root layout")),
	Undo:      key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
	Redo:      key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "redo")),
	Save:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
	Code:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "code")),
	Issues:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "validate")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}
