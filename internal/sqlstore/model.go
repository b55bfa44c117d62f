package sqlstore

import (
	"fmt"

	settings "github.com/allbin/serial-settings"
)

// settingRow is the persisted layout of one serial terminal setting.
// Table: serial_terminal_settings
type settingRow struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement:false"`
	Port        string `gorm:"column:port;not null;uniqueIndex:idx_serial_terminal_settings_port"`
	BaudRate    int    `gorm:"column:baud_rate;not null"`
	DataBits    int    `gorm:"column:data_bits;not null"`
	StopBits    string `gorm:"column:stop_bits;not null"`
	Parity      string `gorm:"column:parity;not null"`
	FlowControl string `gorm:"column:flow_control;not null"`
}

func (settingRow) TableName() string { return "serial_terminal_settings" }

// sequenceRow stores the highest id ever handed out for a table, so ids
// are not reused after the newest record is deleted.
// Table: setting_sequences
type sequenceRow struct {
	Name   string `gorm:"column:name;primaryKey"`
	LastID int64  `gorm:"column:last_id;not null"`
}

func (sequenceRow) TableName() string { return "setting_sequences" }

const settingsSequence = "serial_terminal_settings"

func toRow(s settings.Setting) settingRow {
	return settingRow{
		ID:          s.ID,
		Port:        s.Port,
		BaudRate:    s.BaudRate,
		DataBits:    s.DataBits,
		StopBits:    s.StopBits.String(),
		Parity:      s.Parity.String(),
		FlowControl: s.FlowControl.String(),
	}
}

// fromRow parses the enumerated columns strictly; stored text that does not
// name a known value is reported as a corrupt record.
func fromRow(r settingRow) (settings.Setting, error) {
	sb, err := settings.ParseStopBits(r.StopBits)
	if err != nil {
		return settings.Setting{}, fmt.Errorf("corrupt record %d: %w", r.ID, err)
	}
	p, err := settings.ParseParity(r.Parity)
	if err != nil {
		return settings.Setting{}, fmt.Errorf("corrupt record %d: %w", r.ID, err)
	}
	fc, err := settings.ParseFlowControl(r.FlowControl)
	if err != nil {
		return settings.Setting{}, fmt.Errorf("corrupt record %d: %w", r.ID, err)
	}
	if sb.String() != r.StopBits || p.String() != r.Parity || fc.String() != r.FlowControl {
		return settings.Setting{}, fmt.Errorf("corrupt record %d: non-canonical enum text", r.ID)
	}
	return settings.Setting{
		ID:          r.ID,
		Port:        r.Port,
		BaudRate:    r.BaudRate,
		DataBits:    r.DataBits,
		StopBits:    sb,
		Parity:      p,
		FlowControl: fc,
	}, nil
}
