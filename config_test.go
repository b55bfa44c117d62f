package settings

import "testing"

func TestDefaultSetting(t *testing.T) {
	s := DefaultSetting("/dev/ttyUSB0")

	if s.BaudRate != 115200 {
		t.Errorf("Expected BaudRate 115200, got %d", s.BaudRate)
	}
	if s.DataBits != 8 {
		t.Errorf("Expected DataBits 8, got %d", s.DataBits)
	}
	if s.StopBits != StopBitsOne {
		t.Errorf("Expected StopBits ONE, got %v", s.StopBits)
	}
	if s.Parity != ParityNone {
		t.Errorf("Expected Parity NONE, got %v", s.Parity)
	}
	if s.FlowControl != FlowControlNone {
		t.Errorf("Expected FlowControl NONE, got %v", s.FlowControl)
	}
	if got := s.Framing(); got != "115200 8N1" {
		t.Errorf("Framing() = %q, want %q", got, "115200 8N1")
	}
}

func TestParseStopBits(t *testing.T) {
	tests := []struct {
		in      string
		want    StopBits
		wantErr bool
	}{
		{"ONE", StopBitsOne, false},
		{"one", StopBitsOne, false},
		{"1", StopBitsOne, false},
		{"ONE_POINT_FIVE", StopBitsOnePointFive, false},
		{"one-point-five", StopBitsOnePointFive, false},
		{"1.5", StopBitsOnePointFive, false},
		{" two ", StopBitsTwo, false},
		{"3", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStopBits(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStopBits(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseStopBits(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseParity(t *testing.T) {
	tests := []struct {
		in      string
		want    Parity
		wantErr bool
	}{
		{"NONE", ParityNone, false},
		{"n", ParityNone, false},
		{"Odd", ParityOdd, false},
		{"E", ParityEven, false},
		{"mark", ParityMark, false},
		{"SPACE", ParitySpace, false},
		{"x", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseParity(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseParity(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseParity(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFlowControl(t *testing.T) {
	tests := []struct {
		in      string
		want    FlowControl
		wantErr bool
	}{
		{"NONE", FlowControlNone, false},
		{"hardware", FlowControlHardware, false},
		{"rtscts", FlowControlHardware, false},
		{"RTS/CTS", FlowControlHardware, false},
		{"software", FlowControlSoftware, false},
		{"xon-xoff", FlowControlSoftware, false},
		{"cts", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFlowControl(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFlowControl(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFlowControl(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestEnumTextRejectsUnknownValues(t *testing.T) {
	if _, err := StopBits(0).MarshalText(); err == nil {
		t.Error("StopBits(0).MarshalText() succeeded")
	}
	if _, err := Parity(9).MarshalText(); err == nil {
		t.Error("Parity(9).MarshalText() succeeded")
	}
	if _, err := FlowControl(0).MarshalText(); err == nil {
		t.Error("FlowControl(0).MarshalText() succeeded")
	}

	var p Parity
	if err := p.UnmarshalText([]byte("EVEN")); err != nil || p != ParityEven {
		t.Errorf("UnmarshalText(EVEN) = %v, %v", p, err)
	}
	if err := p.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("UnmarshalText(bogus) succeeded")
	}
	if p != ParityEven {
		t.Errorf("failed UnmarshalText modified value to %v", p)
	}
}

func TestEnumStrings(t *testing.T) {
	if got := StopBitsOnePointFive.String(); got != "ONE_POINT_FIVE" {
		t.Errorf("StopBitsOnePointFive.String() = %q", got)
	}
	if got := ParityMark.Letter(); got != "M" {
		t.Errorf("ParityMark.Letter() = %q", got)
	}
	if got := FlowControlSoftware.String(); got != "SOFTWARE" {
		t.Errorf("FlowControlSoftware.String() = %q", got)
	}
	if got := Parity(0).String(); got != "Parity(0)" {
		t.Errorf("Parity(0).String() = %q", got)
	}
}
