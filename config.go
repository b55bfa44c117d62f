package settings

import (
	"fmt"
	"strings"
)

// Setting is the persisted configuration of one serial terminal port.
type Setting struct {
	ID          int64       `yaml:"-" toml:"-"`
	Port        string      `yaml:"port" toml:"port"`
	BaudRate    int         `yaml:"baud_rate" toml:"baud_rate"`
	DataBits    int         `yaml:"data_bits" toml:"data_bits"`
	StopBits    StopBits    `yaml:"stop_bits" toml:"stop_bits"`
	Parity      Parity      `yaml:"parity" toml:"parity"`
	FlowControl FlowControl `yaml:"flow_control" toml:"flow_control"`
}

// DefaultSetting returns 115200 8N1 without flow control for port.
func DefaultSetting(port string) Setting {
	return Setting{
		Port:        port,
		BaudRate:    115200,
		DataBits:    8,
		StopBits:    StopBitsOne,
		Parity:      ParityNone,
		FlowControl: FlowControlNone,
	}
}

// Framing renders the classic short form, e.g. "9600 8N1".
func (s Setting) Framing() string {
	return fmt.Sprintf("%d %d%s%s", s.BaudRate, s.DataBits, s.Parity.Letter(), s.StopBits.Short())
}

// StopBits is the number of framing bits after each character.
type StopBits int

// The zero value is unset and never valid.
const (
	StopBitsOne StopBits = iota + 1
	StopBitsOnePointFive
	StopBitsTwo
)

// Parity is the per-character error-detection scheme.
type Parity int

const (
	ParityNone Parity = iota + 1
	ParityOdd
	ParityEven
	ParityMark
	ParitySpace
)

// FlowControl paces transmission to avoid receiver overrun.
type FlowControl int

const (
	FlowControlNone FlowControl = iota + 1
	FlowControlHardware
	FlowControlSoftware
)

var stopBitsNames = map[StopBits]string{
	StopBitsOne:          "ONE",
	StopBitsOnePointFive: "ONE_POINT_FIVE",
	StopBitsTwo:          "TWO",
}

var parityNames = map[Parity]string{
	ParityNone:  "NONE",
	ParityOdd:   "ODD",
	ParityEven:  "EVEN",
	ParityMark:  "MARK",
	ParitySpace: "SPACE",
}

var flowControlNames = map[FlowControl]string{
	FlowControlNone:     "NONE",
	FlowControlHardware: "HARDWARE",
	FlowControlSoftware: "SOFTWARE",
}

// Valid reports whether sb is one of the declared values.
func (sb StopBits) Valid() bool {
	_, ok := stopBitsNames[sb]
	return ok
}

func (sb StopBits) String() string {
	if n, ok := stopBitsNames[sb]; ok {
		return n
	}
	return fmt.Sprintf("StopBits(%d)", int(sb))
}

// Short returns "1", "1.5" or "2".
func (sb StopBits) Short() string {
	switch sb {
	case StopBitsOne:
		return "1"
	case StopBitsOnePointFive:
		return "1.5"
	case StopBitsTwo:
		return "2"
	default:
		return "?"
	}
}

func (sb StopBits) MarshalText() ([]byte, error) {
	if !sb.Valid() {
		return nil, fmt.Errorf("invalid stop bits %d", int(sb))
	}
	return []byte(sb.String()), nil
}

func (sb *StopBits) UnmarshalText(text []byte) error {
	v, err := ParseStopBits(string(text))
	if err != nil {
		return err
	}
	*sb = v
	return nil
}

// ParseStopBits accepts the canonical names as well as "1", "1.5" and "2".
func ParseStopBits(s string) (StopBits, error) {
	switch normalize(s) {
	case "ONE", "1":
		return StopBitsOne, nil
	case "ONE_POINT_FIVE", "1.5":
		return StopBitsOnePointFive, nil
	case "TWO", "2":
		return StopBitsTwo, nil
	}
	return 0, fmt.Errorf("unknown stop bits %q", s)
}

func (p Parity) Valid() bool {
	_, ok := parityNames[p]
	return ok
}

func (p Parity) String() string {
	if n, ok := parityNames[p]; ok {
		return n
	}
	return fmt.Sprintf("Parity(%d)", int(p))
}

// Letter returns the single-letter form used in "8N1" notation.
func (p Parity) Letter() string {
	if !p.Valid() {
		return "?"
	}
	return p.String()[:1]
}

func (p Parity) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid parity %d", int(p))
	}
	return []byte(p.String()), nil
}

func (p *Parity) UnmarshalText(text []byte) error {
	v, err := ParseParity(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ParseParity accepts the canonical names and their first letter.
func ParseParity(s string) (Parity, error) {
	switch normalize(s) {
	case "NONE", "N":
		return ParityNone, nil
	case "ODD", "O":
		return ParityOdd, nil
	case "EVEN", "E":
		return ParityEven, nil
	case "MARK", "M":
		return ParityMark, nil
	case "SPACE", "S":
		return ParitySpace, nil
	}
	return 0, fmt.Errorf("unknown parity %q", s)
}

func (fc FlowControl) Valid() bool {
	_, ok := flowControlNames[fc]
	return ok
}

func (fc FlowControl) String() string {
	if n, ok := flowControlNames[fc]; ok {
		return n
	}
	return fmt.Sprintf("FlowControl(%d)", int(fc))
}

func (fc FlowControl) MarshalText() ([]byte, error) {
	if !fc.Valid() {
		return nil, fmt.Errorf("invalid flow control %d", int(fc))
	}
	return []byte(fc.String()), nil
}

func (fc *FlowControl) UnmarshalText(text []byte) error {
	v, err := ParseFlowControl(string(text))
	if err != nil {
		return err
	}
	*fc = v
	return nil
}

// ParseFlowControl accepts the canonical names plus "RTSCTS" and "XONXOFF".
func ParseFlowControl(s string) (FlowControl, error) {
	switch normalize(s) {
	case "NONE":
		return FlowControlNone, nil
	case "HARDWARE", "RTSCTS", "RTS_CTS":
		return FlowControlHardware, nil
	case "SOFTWARE", "XONXOFF", "XON_XOFF":
		return FlowControlSoftware, nil
	}
	return 0, fmt.Errorf("unknown flow control %q", s)
}

func normalize(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.NewReplacer("-", "_", "/", "_", " ", "_").Replace(s)
}
