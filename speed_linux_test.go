//go:build linux

package settings

import (
	"errors"
	"testing"

	"golang.org/x/sys/unix"
)

func TestTermiosSpeed(t *testing.T) {
	tests := []struct {
		rate int
		want uint32
	}{
		{9600, unix.B9600},
		{115200, unix.B115200},
		{4000000, unix.B4000000},
	}
	for _, tt := range tests {
		got, err := TermiosSpeed(tt.rate)
		if err != nil {
			t.Errorf("TermiosSpeed(%d) error: %v", tt.rate, err)
			continue
		}
		if got != tt.want {
			t.Errorf("TermiosSpeed(%d) = %#o, want %#o", tt.rate, got, tt.want)
		}
	}

	if _, err := TermiosSpeed(250000); !errors.Is(err, ErrInvalidSetting) {
		t.Errorf("TermiosSpeed(250000) = %v, want invalid setting", err)
	}
}

func TestEveryStandardRateHasTermiosSpeed(t *testing.T) {
	for _, rate := range StandardBaudRates {
		if _, err := TermiosSpeed(rate); err != nil {
			t.Errorf("standard rate %d has no termios speed", rate)
		}
	}
}
