package keys

import "github.com/charmbracelet/bubbles/key"

// BrowseKeys are the bindings of the settings browser. Row navigation is
// handled by the table itself.
type BrowseKeys struct {
	CommonKeys
	Up      key.Binding
	Down    key.Binding
	Delete  key.Binding
	Refresh key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

func NewBrowseKeys() BrowseKeys {
	return BrowseKeys{
		CommonKeys: NewCommonKeys(),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete setting"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r", "ctrl+r"),
			key.WithHelp("r", "refresh"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
	}
}

func (k BrowseKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Delete, k.Refresh, k.Quit}
}

func (k BrowseKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Delete, k.Confirm, k.Cancel},
		{k.Refresh, k.Help, k.Quit},
	}
}
