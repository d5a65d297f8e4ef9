package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next       key.Binding
	Prev       key.Binding
	AvatarPrev key.Binding
	AvatarNext key.Binding
	Difficulty key.Binding
	Start      key.Binding
	Roll       key.Binding
	Spin       key.Binding
	Again      key.Binding
	NewGame    key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Next:       key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	Prev:       key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
	AvatarPrev: key.NewBinding(key.WithKeys("ctrl+left"), key.WithHelp("ctrl+←", "previous avatar")),
	AvatarNext: key.NewBinding(key.WithKeys("ctrl+right"), key.WithHelp("ctrl+→", "next avatar")),
	Difficulty: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "next difficulty")),
	Start:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start game")),
	Roll:       key.NewBinding(key.WithKeys("r", "enter"), key.WithHelp("r", "roll dice")),
	Spin:       key.NewBinding(key.WithKeys("s", " "), key.WithHelp("s", "spin")),
	Again:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "play again")),
	NewGame:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new game")),
	Quit:       key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
}
