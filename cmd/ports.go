/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	settings "github.com/allbin/serial-settings"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// portsCmd represents the ports command
var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List attached serial ports and their configuration",
	Long: `List all serial ports attached to the system and whether each one has a
stored settings record.

This command scans for communication-capable serial devices including:
- USB serial adapters (ttyUSB*)
- USB CDC/ACM devices (ttyACM*)
- Standard serial ports (ttyS*)
- ARM/Raspberry Pi ports (ttyAMA*)
- And other platform-specific serial devices

Virtual terminals and pseudo-terminals are excluded from the listing.

Examples:
  serial-settings ports
  serial-settings ports -t -f usb`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ports, err := settings.ListPorts()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing ports: %v\n", err)
			os.Exit(1)
		}

		filterType, _ := cmd.Flags().GetString("filter")
		tableFormat, _ := cmd.Flags().GetBool("table")

		filteredPorts := filterPorts(ports, filterType)
		if len(filteredPorts) == 0 {
			if filterType != "" {
				fmt.Printf("No serial ports found matching filter: %s\n", filterType)
			} else {
				fmt.Println("No serial ports found")
			}
			return
		}

		repo := openRepository()
		defer repo.Close()

		configured := make(map[string]settings.Setting, len(filteredPorts))
		for _, port := range filteredPorts {
			s, found, err := repo.GetByPort(cmd.Context(), port)
			if err != nil {
				exitWithError("looking up port", err)
			}
			if found {
				configured[port] = s
			}
		}

		if tableFormat {
			renderPortTable(filteredPorts, configured)
		} else {
			renderSimple(filteredPorts, configured)
		}
	},
}

func init() {
	rootCmd.AddCommand(portsCmd)

	portsCmd.Flags().StringP("filter", "f", "", "Filter by port type: usb, standard, arm, all")
	portsCmd.Flags().BoolP("table", "t", false, "Display output in a styled table format")
}

// filterPorts filters the port list based on the specified filter type
func filterPorts(ports []string, filterType string) []string {
	if filterType == "" || filterType == "all" {
		return ports
	}

	var filtered []string
	for _, port := range ports {
		name := strings.ToLower(portName(port))
		switch strings.ToLower(filterType) {
		case "usb":
			if strings.HasPrefix(name, "ttyusb") || strings.HasPrefix(name, "ttyacm") {
				filtered = append(filtered, port)
			}
		case "standard":
			if strings.HasPrefix(name, "ttys") && !strings.HasPrefix(name, "ttysac") {
				filtered = append(filtered, port)
			}
		case "arm":
			if strings.HasPrefix(name, "ttyama") {
				filtered = append(filtered, port)
			}
		}
	}
	return filtered
}

func portName(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}

// renderPortTable renders the port list in a styled static table format
func renderPortTable(ports []string, configured map[string]settings.Setting) {
	fmt.Printf("Found %d serial port(s):\n\n", len(ports))

	portWidth := 15
	descWidth := 24
	framingWidth := 16

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("240")).
		PaddingBottom(1)

	cellStyle := lipgloss.NewStyle().
		PaddingRight(2)

	header := fmt.Sprintf("%-*s %-*s %-*s %s",
		portWidth, "Port",
		descWidth, "Description",
		framingWidth, "Framing",
		"Flow")
	fmt.Println(headerStyle.Render(header))

	for _, port := range ports {
		framing, flow := "unconfigured", "-"
		if s, ok := configured[port]; ok {
			framing = s.Framing()
			flow = s.FlowControl.String()
		}
		row := fmt.Sprintf("%-*s %-*s %-*s %s",
			portWidth, portName(port),
			descWidth, settings.PortDescription(portName(port)),
			framingWidth, framing,
			flow)
		fmt.Println(cellStyle.Render(row))
	}
}

// renderSimple renders the port list in simple text format
func renderSimple(ports []string, configured map[string]settings.Setting) {
	for _, port := range ports {
		if s, ok := configured[port]; ok {
			fmt.Printf("%s\t%s\t%s\n", port, s.Framing(), s.FlowControl)
			continue
		}
		fmt.Println(port)
	}
}
