package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Search  key.Binding
	PrevCol key.Binding
	NextCol key.Binding
	Sort    key.Binding
	View    key.Binding
	Raw     key.Binding
	Rerun   key.Binding
	Stop    key.Binding
	Refresh key.Binding
	Dismiss key.Binding
	Help    key.Binding
	Quit    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		PrevCol: key.NewBinding(key.WithKeys("<", ","), key.WithHelp("<", "prev column")),
		NextCol: key.NewBinding(key.WithKeys(">", "."), key.WithHelp(">", "next column")),
		Sort:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		View:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "view")),
		Raw:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "raw")),
		Rerun:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "re-run")),
		Stop:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Dismiss: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss/close")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Confirm: key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "cancel")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.NextCol, k.Sort, k.View, k.Rerun, k.Stop, k.Dismiss, k.Quit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Search, k.Refresh},
		{k.PrevCol, k.NextCol, k.Sort},
		{k.View, k.Raw, k.Rerun, k.Stop},
		{k.Dismiss, k.Help, k.Quit},
	}
}
