package app

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextTab key.Binding
	PrevTab key.Binding
	Back    key.Binding
	Forward key.Binding
	Filter  key.Binding
	Open    key.Binding
	Create  key.Binding
	Refresh key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		NextTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		Back:    key.NewBinding(key.WithKeys("alt+left", "["), key.WithHelp("[", "back")),
		Forward: key.NewBinding(key.WithKeys("alt+right", "]"), key.WithHelp("]", "forward")),
		Filter:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cycle task filter")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Create:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new content")),
		Refresh: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "refresh")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Back, k.Forward, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Filter, k.Open, k.Create},
		{k.Back, k.Forward, k.Refresh},
		{k.Help, k.Palette, k.Quit},
	}
}
