package settings

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// ListPorts returns the serial devices currently present under /dev.
// Virtual terminals and pseudo-terminals are excluded.
func ListPorts() ([]string, error) {
	return listPortsIn("/dev")
}

var (
	portPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^ttyUSB\d+$`), // USB serial adapters
		regexp.MustCompile(`^ttyACM\d+$`), // USB CDC/ACM devices
		regexp.MustCompile(`^ttyS\d+$`),   // Standard serial ports
		regexp.MustCompile(`^ttyAMA\d+$`), // ARM/Raspberry Pi serial
		regexp.MustCompile(`^ttymxc\d+$`), // i.MX serial ports
		regexp.MustCompile(`^ttyO\d+$`),   // OMAP serial ports
		regexp.MustCompile(`^ttySAC\d+$`), // Samsung serial ports
		regexp.MustCompile(`^ttyTHS\d+$`), // Tegra serial ports
	}
	excludePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^tty\d+$`),
		regexp.MustCompile(`^console$`),
		regexp.MustCompile(`^ptmx$`),
		regexp.MustCompile(`^pty.*$`),
	}
)

func listPortsIn(devDir string) ([]string, error) {
	entries, err := os.ReadDir(devDir)
	if err != nil {
		return nil, err
	}

	var ports []string
	for _, entry := range entries {
		name := entry.Name()
		if !isSerialName(name) {
			continue
		}
		fullPath := filepath.Join(devDir, name)
		if isCharacterDevice(fullPath) {
			ports = append(ports, fullPath)
		}
	}

	sort.Strings(ports)
	return ports, nil
}

func isSerialName(name string) bool {
	for _, p := range excludePatterns {
		if p.MatchString(name) {
			return false
		}
	}
	for _, p := range portPatterns {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}

// isCharacterDevice checks if the given path is a character device
func isCharacterDevice(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// PortInfo describes a discovered serial device.
type PortInfo struct {
	Name        string
	Path        string
	Description string
}

// GetPortInfo returns the name and a human-readable description of a device.
func GetPortInfo(portPath string) (*PortInfo, error) {
	if !isCharacterDevice(portPath) {
		return nil, os.ErrNotExist
	}
	name := filepath.Base(portPath)
	return &PortInfo{
		Name:        name,
		Path:        portPath,
		Description: PortDescription(name),
	}, nil
}

// PortDescription classifies a device by its kernel name.
func PortDescription(name string) string {
	switch {
	case strings.HasPrefix(name, "ttyUSB"):
		return "USB Serial Port"
	case strings.HasPrefix(name, "ttyACM"):
		return "USB CDC/ACM Device"
	case strings.HasPrefix(name, "ttyAMA"):
		return "ARM Serial Port"
	case strings.HasPrefix(name, "ttymxc"):
		return "i.MX Serial Port"
	case strings.HasPrefix(name, "ttySAC"):
		return "Samsung Serial Port"
	case strings.HasPrefix(name, "ttyTHS"):
		return "Tegra Serial Port"
	case strings.HasPrefix(name, "ttyO"):
		return "OMAP Serial Port"
	case strings.HasPrefix(name, "ttyS"):
		return "Standard Serial Port"
	default:
		return "Serial Port"
	}
}
