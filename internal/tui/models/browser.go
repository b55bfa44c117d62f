package models

import (
	"context"
	"fmt"

	settings "github.com/allbin/serial-settings"
	"github.com/allbin/serial-settings/internal/tui/components"
	"github.com/allbin/serial-settings/internal/tui/keys"
	"github.com/allbin/serial-settings/internal/tui/styles"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"
)

// Source is the part of the repository the browser needs.
type Source interface {
	ListAll(ctx context.Context) ([]settings.Setting, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// PortLister returns the device paths currently attached.
type PortLister func() ([]string, error)

// SettingsLoadedMsg carries a fresh listing and the attached devices.
type SettingsLoadedMsg struct {
	Settings []settings.Setting
	Present  map[string]bool
	// PortsErr is set when device discovery failed; presence is then unknown.
	PortsErr error
	Err      error
}

// SettingDeletedMsg reports the outcome of a delete.
type SettingDeletedMsg struct {
	ID      int64
	Port    string
	Deleted bool
	Err     error
}

const (
	columnKeyID     = "id"
	columnKeyPort   = "port"
	columnKeyBaud   = "baud"
	columnKeyFrame  = "framing"
	columnKeyFlow   = "flow"
	columnKeyDevice = "device"
)

// BrowserModel lists configured ports and lets the user delete them.
type BrowserModel struct {
	ctx       context.Context
	source    Source
	listPorts PortLister

	table     table.Model
	statusBar *components.StatusBar
	help      help.Model
	keys      keys.BrowseKeys

	records  []settings.Setting
	present  map[string]bool
	portsErr error

	// pending is the record awaiting delete confirmation.
	pending *settings.Setting

	width  int
	height int
}

func NewBrowserModel(ctx context.Context, source Source, listPorts PortLister) *BrowserModel {
	columns := []table.Column{
		table.NewColumn(columnKeyID, "ID", 6),
		table.NewColumn(columnKeyPort, "Port", 24),
		table.NewColumn(columnKeyBaud, "Baud", 10),
		table.NewColumn(columnKeyFrame, "Frame", 7),
		table.NewColumn(columnKeyFlow, "Flow", 10),
		table.NewColumn(columnKeyDevice, "Device", 9),
	}

	t := table.New(columns).
		Focused(true).
		WithBaseStyle(styles.TableBaseStyle).
		HeaderStyle(styles.TableHeaderStyle).
		HighlightStyle(styles.TableHighlightStyle).
		WithPageSize(10)

	return &BrowserModel{
		ctx:       ctx,
		source:    source,
		listPorts: listPorts,
		table:     t,
		statusBar: components.NewStatusBar("Serial Settings"),
		help:      help.New(),
		keys:      keys.NewBrowseKeys(),
	}
}

func (m *BrowserModel) Init() tea.Cmd {
	return m.load()
}

// Records returns the listing currently shown.
func (m *BrowserModel) Records() []settings.Setting { return m.records }

// Pending returns the record awaiting delete confirmation, if any.
func (m *BrowserModel) Pending() (settings.Setting, bool) {
	if m.pending == nil {
		return settings.Setting{}, false
	}
	return *m.pending, true
}

// Err returns the last error shown in the status bar.
func (m *BrowserModel) Err() error { return m.statusBar.Err() }

func (m *BrowserModel) load() tea.Cmd {
	ctx, source, listPorts := m.ctx, m.source, m.listPorts
	return func() tea.Msg {
		list, err := source.ListAll(ctx)
		if err != nil {
			return SettingsLoadedMsg{Err: err}
		}
		msg := SettingsLoadedMsg{Settings: list, Present: make(map[string]bool)}
		if listPorts == nil {
			return msg
		}
		ports, err := listPorts()
		if err != nil {
			msg.PortsErr = err
			return msg
		}
		for _, p := range ports {
			msg.Present[p] = true
		}
		return msg
	}
}

func (m *BrowserModel) delete(s settings.Setting) tea.Cmd {
	ctx, source := m.ctx, m.source
	return func() tea.Msg {
		deleted, err := source.Delete(ctx, s.ID)
		return SettingDeletedMsg{ID: s.ID, Port: s.Port, Deleted: deleted, Err: err}
	}
}

func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.statusBar.SetWidth(msg.Width)
		m.help.Width = msg.Width
		// title, table header and footer, status bar, help
		pageSize := msg.Height - 9
		if pageSize < 1 {
			pageSize = 1
		}
		m.table = m.table.WithPageSize(pageSize)
		return m, nil

	case SettingsLoadedMsg:
		if msg.Err != nil {
			m.statusBar.SetError(msg.Err)
			return m, nil
		}
		m.records = msg.Settings
		m.present = msg.Present
		m.portsErr = msg.PortsErr
		m.refreshRows()
		m.statusBar.SetMessage(fmt.Sprintf("Loaded %d setting(s)", len(m.records)))
		if msg.PortsErr != nil {
			m.statusBar.SetError(fmt.Errorf("device discovery: %w", msg.PortsErr))
		}
		return m, nil

	case SettingDeletedMsg:
		if msg.Err != nil {
			m.statusBar.SetError(msg.Err)
			return m, nil
		}
		if msg.Deleted {
			m.statusBar.SetMessage(fmt.Sprintf("Deleted %s (id %d)", msg.Port, msg.ID))
		} else {
			m.statusBar.SetMessage(fmt.Sprintf("%s was already gone", msg.Port))
		}
		return m, m.load()

	case tea.KeyMsg:
		if m.pending != nil {
			switch {
			case key.Matches(msg, m.keys.Confirm):
				s := *m.pending
				m.pending = nil
				m.statusBar.SetMode("BROWSE")
				return m, m.delete(s)
			case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit):
				m.pending = nil
				m.statusBar.SetMode("BROWSE")
				m.statusBar.SetMessage("Delete cancelled")
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.statusBar.SetMessage("Refreshing...")
			return m, m.load()
		case key.Matches(msg, m.keys.Delete):
			if s, ok := m.highlighted(); ok {
				m.pending = &s
				m.statusBar.SetMode("CONFIRM")
				m.statusBar.SetMessage(fmt.Sprintf("Delete %s? (y/n)", s.Port))
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	m.updateSelection()
	return m, cmd
}

func (m *BrowserModel) View() string {
	title := styles.TitleStyle.Render("Serial Settings")

	var body string
	if len(m.records) == 0 {
		body = styles.InfoStyle.Width(m.width).Render("No serial terminal settings configured")
	} else {
		body = m.table.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		body,
		m.statusBar.View(),
		m.help.View(m.keys),
	)
}

func (m *BrowserModel) status(port string) styles.PortStatus {
	switch {
	case m.portsErr != nil:
		return styles.PortUnknown
	case m.present[port]:
		return styles.PortPresent
	default:
		return styles.PortMissing
	}
}

func (m *BrowserModel) refreshRows() {
	rows := make([]table.Row, 0, len(m.records))
	attached := 0
	for _, s := range m.records {
		st := m.status(s.Port)
		if st == styles.PortPresent {
			attached++
		}
		rows = append(rows, table.NewRow(table.RowData{
			columnKeyID:     s.ID,
			columnKeyPort:   s.Port,
			columnKeyBaud:   s.BaudRate,
			columnKeyFrame:  fmt.Sprintf("%d%s%s", s.DataBits, s.Parity.Letter(), s.StopBits.Short()),
			columnKeyFlow:   s.FlowControl.String(),
			columnKeyDevice: table.NewStyledCell(st.String(), styles.GetPortStatusStyle(st)),
		}))
	}

	cursor := m.table.GetHighlightedRowIndex()
	if cursor >= len(rows) {
		cursor = len(rows) - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	m.table = m.table.WithRows(rows).WithHighlightedRow(cursor)
	m.statusBar.SetCounts(len(m.records), attached)
	m.updateSelection()
}

func (m *BrowserModel) highlighted() (settings.Setting, bool) {
	id, ok := m.table.HighlightedRow().Data[columnKeyID].(int64)
	if !ok {
		return settings.Setting{}, false
	}
	for _, s := range m.records {
		if s.ID == id {
			return s, true
		}
	}
	return settings.Setting{}, false
}

func (m *BrowserModel) updateSelection() {
	if s, ok := m.highlighted(); ok {
		m.statusBar.SetSelected(&s)
		return
	}
	m.statusBar.SetSelected(nil)
}
