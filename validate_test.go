package settings

import (
	"errors"
	"testing"
)

func validSetting() Setting {
	return Setting{
		Port:        "COM3",
		BaudRate:    9600,
		DataBits:    8,
		StopBits:    StopBitsOne,
		Parity:      ParityNone,
		FlowControl: FlowControlNone,
	}
}

func TestValidateAcceptsValidSetting(t *testing.T) {
	if err := Validate(validSetting()); err != nil {
		t.Fatalf("Validate(valid) = %v, want nil", err)
	}
	if err := Validate(DefaultSetting("/dev/ttyUSB0")); err != nil {
		t.Fatalf("Validate(DefaultSetting) = %v, want nil", err)
	}
}

func TestValidateSingleField(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Setting)
		field  string
	}{
		{"empty port", func(s *Setting) { s.Port = "" }, "port"},
		{"blank port", func(s *Setting) { s.Port = "  \t" }, "port"},
		{"zero baud", func(s *Setting) { s.BaudRate = 0 }, "baud_rate"},
		{"negative baud", func(s *Setting) { s.BaudRate = -9600 }, "baud_rate"},
		{"nonstandard baud", func(s *Setting) { s.BaudRate = 12345 }, "baud_rate"},
		{"4 data bits", func(s *Setting) { s.DataBits = 4 }, "data_bits"},
		{"10 data bits", func(s *Setting) { s.DataBits = 10 }, "data_bits"},
		{"unset stop bits", func(s *Setting) { s.StopBits = 0 }, "stop_bits"},
		{"out of enum stop bits", func(s *Setting) { s.StopBits = 7 }, "stop_bits"},
		{"unset parity", func(s *Setting) { s.Parity = 0 }, "parity"},
		{"out of enum parity", func(s *Setting) { s.Parity = 42 }, "parity"},
		{"unset flow control", func(s *Setting) { s.FlowControl = 0 }, "flow_control"},
		{"out of enum flow control", func(s *Setting) { s.FlowControl = -1 }, "flow_control"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSetting()
			tt.mutate(&s)

			err := Validate(s)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want *ValidationError", err)
			}
			if !errors.Is(err, ErrInvalidSetting) {
				t.Errorf("errors.Is(err, ErrInvalidSetting) = false")
			}
			if len(verr.Fields) != 1 || verr.Fields[0].Field != tt.field {
				t.Errorf("Fields = %v, want exactly %q", verr.Fields, tt.field)
			}
		})
	}
}

func TestValidateDataBitsRange(t *testing.T) {
	for bits := 5; bits <= 9; bits++ {
		s := validSetting()
		s.DataBits = bits
		if err := Validate(s); err != nil {
			t.Errorf("DataBits %d: unexpected error %v", bits, err)
		}
	}
}

func TestValidateReportsAllViolations(t *testing.T) {
	err := Validate(Setting{Port: " ", BaudRate: -1, DataBits: 3})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Validate() error = %v, want *ValidationError", err)
	}
	for _, field := range []string{"port", "baud_rate", "data_bits", "stop_bits", "parity", "flow_control"} {
		if !verr.Has(field) {
			t.Errorf("missing violation for %s in %v", field, verr.Fields)
		}
	}
	if len(verr.Fields) != 6 {
		t.Errorf("got %d violations, want 6", len(verr.Fields))
	}
}

func TestValidatorExtraBaudRates(t *testing.T) {
	s := validSetting()
	s.BaudRate = 250000

	if err := Validate(s); err == nil {
		t.Fatal("standard validator accepted 250000")
	}

	v := NewValidator(250000, 0, -5, 250000)
	if err := v.Validate(s); err != nil {
		t.Fatalf("extended validator rejected 250000: %v", err)
	}
	if !v.SupportsBaudRate(9600) {
		t.Error("extended validator lost standard rate 9600")
	}

	rates := v.BaudRates()
	if len(rates) != len(StandardBaudRates)+1 {
		t.Errorf("BaudRates() has %d entries, want %d", len(rates), len(StandardBaudRates)+1)
	}
	for i := 1; i < len(rates); i++ {
		if rates[i-1] >= rates[i] {
			t.Fatalf("BaudRates() not strictly ascending at %d: %v", i, rates)
		}
	}
}
