package settings

import (
	"fmt"
	"slices"
	"strings"
)

// StandardBaudRates lists the POSIX termios speeds accepted by default.
var StandardBaudRates = []int{
	50, 75, 110, 134, 150, 200, 300, 600, 1200, 1800, 2400, 4800, 9600,
	19200, 38400, 57600, 115200, 230400, 460800, 500000, 576000, 921600,
	1000000, 1152000, 1500000, 2000000, 2500000, 3000000, 3500000, 4000000,
}

// Validator checks a Setting against the value domains. The zero value
// accepts StandardBaudRates only.
type Validator struct {
	extra []int
}

// NewValidator returns a Validator that additionally accepts the given
// application-defined baud rates. Non-positive entries are ignored.
func NewValidator(extraBaudRates ...int) Validator {
	var extra []int
	for _, r := range extraBaudRates {
		if r > 0 && !slices.Contains(extra, r) {
			extra = append(extra, r)
		}
	}
	return Validator{extra: extra}
}

// SupportsBaudRate reports whether rate is an accepted speed.
func (v Validator) SupportsBaudRate(rate int) bool {
	if _, ok := slices.BinarySearch(StandardBaudRates, rate); ok {
		return true
	}
	return slices.Contains(v.extra, rate)
}

// BaudRates returns every accepted speed in ascending order.
func (v Validator) BaudRates() []int {
	out := slices.Clone(StandardBaudRates)
	for _, r := range v.extra {
		if !slices.Contains(out, r) {
			out = append(out, r)
		}
	}
	slices.Sort(out)
	return out
}

// Validate reports every out-of-domain field of s as a *ValidationError.
// Uniqueness of the port is not checked here.
func (v Validator) Validate(s Setting) error {
	var fields []FieldError
	add := func(field, format string, args ...any) {
		fields = append(fields, FieldError{Field: field, Reason: fmt.Sprintf(format, args...)})
	}

	if strings.TrimSpace(s.Port) == "" {
		add("port", "must not be empty")
	}

	switch {
	case s.BaudRate <= 0:
		add("baud_rate", "must be positive, got %d", s.BaudRate)
	case !v.SupportsBaudRate(s.BaudRate):
		add("baud_rate", "unsupported baud rate %d", s.BaudRate)
	}

	if s.DataBits < 5 || s.DataBits > 9 {
		add("data_bits", "must be between 5 and 9, got %d", s.DataBits)
	}

	if !s.StopBits.Valid() {
		add("stop_bits", "must be one of ONE, ONE_POINT_FIVE, TWO")
	}
	if !s.Parity.Valid() {
		add("parity", "must be one of NONE, ODD, EVEN, MARK, SPACE")
	}
	if !s.FlowControl.Valid() {
		add("flow_control", "must be one of NONE, HARDWARE, SOFTWARE")
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Validate checks s with the standard Validator.
func Validate(s Setting) error {
	return Validator{}.Validate(s)
}
