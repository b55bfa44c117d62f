package styles

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha colors used by the settings browser
var (
	Base     = lipgloss.Color("#1e1e2e") // Dark background
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Surface2 = lipgloss.Color("#585b70")
	Overlay0 = lipgloss.Color("#6c7086")
	Subtext0 = lipgloss.Color("#a6adc8")
	Subtext1 = lipgloss.Color("#bac2de")
	Text     = lipgloss.Color("#cdd6f4") // Main text

	Blue   = lipgloss.Color("#89b4fa")
	Green  = lipgloss.Color("#a6e3a1")
	Yellow = lipgloss.Color("#f9e2af")
	Peach  = lipgloss.Color("#fab387")
	Red    = lipgloss.Color("#f38ba8")
	Mauve  = lipgloss.Color("#cba6f7")
)

var (
	// Header styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Mauve).
			Background(Surface0).
			Padding(0, 1)

	// Table styles
	TableBaseStyle = lipgloss.NewStyle().
			Foreground(Text).
			BorderForeground(Surface2).
			Align(lipgloss.Left)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(Mauve)

	TableHighlightStyle = lipgloss.NewStyle().
				Foreground(Text).
				Background(Surface1)

	// Device presence styles
	PortPresentStyle = lipgloss.NewStyle().
				Foreground(Green).
				Bold(true)

	PortMissingStyle = lipgloss.NewStyle().
				Foreground(Red).
				Bold(true)

	PortUnknownStyle = lipgloss.NewStyle().
				Foreground(Yellow).
				Bold(true)

	// Error styles
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Red).
			Align(lipgloss.Center)

	// Info styles
	InfoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Mauve).
			Align(lipgloss.Center)
)

// PortStatus tells whether a configured port is currently attached.
type PortStatus int

const (
	PortPresent PortStatus = iota
	PortMissing
	PortUnknown
)

func (s PortStatus) String() string {
	switch s {
	case PortPresent:
		return "present"
	case PortMissing:
		return "missing"
	default:
		return "unknown"
	}
}

func GetPortStatusStyle(status PortStatus) lipgloss.Style {
	switch status {
	case PortPresent:
		return PortPresentStyle
	case PortMissing:
		return PortMissingStyle
	default:
		return PortUnknownStyle
	}
}
