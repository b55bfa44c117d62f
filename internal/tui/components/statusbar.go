package components

import (
	"fmt"

	settings "github.com/allbin/serial-settings"
	"github.com/allbin/serial-settings/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
)

type StatusBar struct {
	title    string
	width    int
	mode     string
	total    int
	present  int
	selected *settings.Setting
	message  string
	err      error
}

func NewStatusBar(title string) *StatusBar {
	return &StatusBar{
		title:   title,
		mode:    "BROWSE",
		message: "Loading...",
	}
}

func (sb *StatusBar) SetWidth(width int) {
	sb.width = width
}

// SetMode switches the mode label, e.g. BROWSE or CONFIRM.
func (sb *StatusBar) SetMode(mode string) {
	sb.mode = mode
}

func (sb *StatusBar) SetCounts(total, present int) {
	sb.total = total
	sb.present = present
}

func (sb *StatusBar) SetSelected(s *settings.Setting) {
	sb.selected = s
}

// SetMessage shows an informational message and clears any error.
func (sb *StatusBar) SetMessage(msg string) {
	sb.message = msg
	sb.err = nil
}

func (sb *StatusBar) SetError(err error) {
	sb.err = err
}

func (sb *StatusBar) Err() error { return sb.err }

// View renders the single-line status bar.
func (sb *StatusBar) View() string {
	terminalWidth := sb.width
	if terminalWidth <= 0 {
		terminalWidth = 80
	}

	// Section 1: Mode indicator
	modeBackground := styles.Blue
	if sb.mode != "BROWSE" {
		modeBackground = styles.Peach
	}
	mode := lipgloss.NewStyle().
		Foreground(styles.Base).
		Background(modeBackground).
		Bold(true).
		Padding(0, 1).
		Render(sb.mode)

	// Section 2: Title and record count
	title := lipgloss.NewStyle().
		Foreground(styles.Mauve).
		Bold(true).
		Padding(0, 1).
		Render(sb.title)
	counts := lipgloss.NewStyle().
		Foreground(styles.Subtext0).
		Render(fmt.Sprintf("%d configured, %d attached", sb.total, sb.present))

	divider := lipgloss.NewStyle().
		Foreground(styles.Surface2).
		Padding(0, 1).
		Render("│")

	leftSide := lipgloss.JoinHorizontal(lipgloss.Left, mode, title, counts, divider)

	// Section 3: Selected record framing
	var details string
	if sb.selected != nil {
		details = fmt.Sprintf("⚡ %s flow %s", sb.selected.Framing(), sb.selected.FlowControl)
	}
	selected := lipgloss.NewStyle().
		Foreground(styles.Subtext1).
		Padding(0, 1).
		Render(details)

	// Section 4: Message or error
	var message string
	if sb.err != nil {
		message = lipgloss.NewStyle().Foreground(styles.Red).Padding(0, 1).Render("✗ " + sb.err.Error())
	} else {
		message = lipgloss.NewStyle().Foreground(styles.Overlay0).Padding(0, 1).Render(sb.message)
	}

	rightSide := lipgloss.JoinHorizontal(lipgloss.Left, selected, divider, message)

	spacerWidth := terminalWidth - lipgloss.Width(leftSide) - lipgloss.Width(rightSide)
	if spacerWidth < 1 {
		spacerWidth = 1
	}
	spacer := lipgloss.NewStyle().Width(spacerWidth).Render("")

	statusBarStyle := lipgloss.NewStyle().
		Foreground(styles.Text).
		Background(styles.Surface0).
		Width(terminalWidth)

	return statusBarStyle.Render(lipgloss.JoinHorizontal(lipgloss.Left, leftSide, spacer, rightSide))
}
