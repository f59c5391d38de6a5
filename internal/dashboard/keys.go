package dashboard

import "github.com/charmbracelet/bubbles/key"

// listKeys holds key bindings for the list pane.
type listKeys struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Search key.Binding
	Tab    key.Binding
	Add    key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns the list bindings for the help bar.
func (k listKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Search, k.Add, k.Delete, k.Tab, k.Quit}
}

// FullHelp returns the list bindings grouped for expanded help.
func (k listKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Search, k.Add, k.Delete},
		{k.Tab, k.Quit},
	}
}

// searchKeys holds key bindings while the search box has focus.
type searchKeys struct {
	Done  key.Binding
	Clear key.Binding
}

// ShortHelp returns the search bindings for the help bar.
func (k searchKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Done, k.Clear}
}

// FullHelp returns the search bindings grouped for expanded help.
func (k searchKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Done, k.Clear}}
}

// detailKeys holds key bindings for the read-only detail pane.
type detailKeys struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns the detail bindings for the help bar.
func (k detailKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns the detail bindings grouped for expanded help.
func (k detailKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Back, k.Quit}}
}

// editKeys holds key bindings while editing contact fields.
type editKeys struct {
	Prev key.Binding
	Next key.Binding
	Back key.Binding
}

// ShortHelp returns the edit bindings for the help bar.
func (k editKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Back}
}

// FullHelp returns the edit bindings grouped for expanded help.
func (k editKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Prev, k.Next, k.Back}}
}

// ListKeyMap returns the list pane bindings for a variant. Add and delete
// are only enabled in the editor.
func ListKeyMap(v Variant) listKeys {
	km := listKeys{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "detail"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "close"),
		),
	}
	if v != VariantEditor {
		km.Add.SetEnabled(false)
		km.Delete.SetEnabled(false)
	} else {
		km.Tab.SetHelp("tab", "edit")
	}
	return km
}

// SearchKeyMap returns the bindings shown while typing a query.
func SearchKeyMap() searchKeys {
	return searchKeys{
		Done: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "done"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
	}
}

// DetailKeyMap returns the bindings for the read-only detail pane.
func DetailKeyMap() detailKeys {
	return detailKeys{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Back: key.NewBinding(
			key.WithKeys("tab", "esc"),
			key.WithHelp("tab/esc", "list"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "close"),
		),
	}
}

// EditKeyMap returns the bindings shown while editing fields.
func EditKeyMap() editKeys {
	return editKeys{
		Prev: key.NewBinding(
			key.WithKeys("up", "shift+tab"),
			key.WithHelp("↑", "prev field"),
		),
		Next: key.NewBinding(
			key.WithKeys("down", "enter"),
			key.WithHelp("↓/enter", "next field"),
		),
		Back: key.NewBinding(
			key.WithKeys("tab", "esc"),
			key.WithHelp("tab/esc", "list"),
		),
	}
}
