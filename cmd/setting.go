/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	settings "github.com/allbin/serial-settings"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// addFramingFlags registers the flags shared by add and set.
func addFramingFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("baud", "b", 0, "Baud rate, e.g. 9600 or 115200")
	cmd.Flags().IntP("data-bits", "d", 0, "Data bits: 5, 6, 7, 8 or 9")
	cmd.Flags().StringP("stop-bits", "s", "", "Stop bits: 1, 1.5, 2")
	cmd.Flags().StringP("parity", "p", "", "Parity: none, odd, even, mark, space")
	cmd.Flags().StringP("flow-control", "f", "", "Flow control: none, hardware (rtscts), software (xonxoff)")
}

// applyFramingFlags copies every framing flag the user set onto s. Flags
// left at their zero default do not touch s.
func applyFramingFlags(cmd *cobra.Command, s *settings.Setting) (changed bool, err error) {
	flags := cmd.Flags()

	if flags.Changed("baud") {
		s.BaudRate, _ = flags.GetInt("baud")
		changed = true
	}
	if flags.Changed("data-bits") {
		s.DataBits, _ = flags.GetInt("data-bits")
		changed = true
	}
	if flags.Changed("stop-bits") {
		raw, _ := flags.GetString("stop-bits")
		if s.StopBits, err = settings.ParseStopBits(raw); err != nil {
			return changed, err
		}
		changed = true
	}
	if flags.Changed("parity") {
		raw, _ := flags.GetString("parity")
		if s.Parity, err = settings.ParseParity(raw); err != nil {
			return changed, err
		}
		changed = true
	}
	if flags.Changed("flow-control") {
		raw, _ := flags.GetString("flow-control")
		if s.FlowControl, err = settings.ParseFlowControl(raw); err != nil {
			return changed, err
		}
		changed = true
	}
	return changed, nil
}

// resolveSetting looks arg up as a record id first and as a port second.
func resolveSetting(ctx context.Context, repo *settings.Repository, arg string) (settings.Setting, bool, error) {
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil && id > 0 {
		s, found, err := repo.GetByID(ctx, id)
		if err != nil || found {
			return s, found, err
		}
	}
	return repo.GetByPort(ctx, arg)
}

// mustResolve resolves arg or exits with an error.
func mustResolve(ctx context.Context, repo *settings.Repository, arg string) settings.Setting {
	s, found, err := resolveSetting(ctx, repo, arg)
	if err != nil {
		exitWithError("looking up setting", err)
	}
	if !found {
		fmt.Fprintf(os.Stderr, "Error: no setting for %q\n", arg)
		os.Exit(1)
	}
	return s
}

// exitWithError prints err and exits. Validation errors list one field per
// line.
func exitWithError(action string, err error) {
	printError(os.Stderr, action, err)
	os.Exit(1)
}

func printError(w io.Writer, action string, err error) {
	var verr *settings.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintf(w, "Error %s: %v\n", action, settings.ErrInvalidSetting)
		for _, fe := range verr.Fields {
			fmt.Fprintf(w, "  %s\n", fe)
		}
		return
	}
	fmt.Fprintf(w, "Error %s: %v\n", action, err)
}

func printSetting(w io.Writer, s settings.Setting) {
	fmt.Fprintf(w, "Setting %d: %s\n\n", s.ID, s.Port)
	fmt.Fprintf(w, "  Baud rate:    %d\n", s.BaudRate)
	fmt.Fprintf(w, "  Data bits:    %d\n", s.DataBits)
	fmt.Fprintf(w, "  Stop bits:    %s\n", s.StopBits.Short())
	fmt.Fprintf(w, "  Parity:       %s\n", s.Parity)
	fmt.Fprintf(w, "  Flow control: %s\n", s.FlowControl)
	fmt.Fprintf(w, "  Framing:      %s\n", s.Framing())
}

// summary is the one-line form used by ls and write confirmations.
func summary(s settings.Setting) string {
	return fmt.Sprintf("%d\t%s\t%s\t%s", s.ID, s.Port, s.Framing(), s.FlowControl)
}

// renderSettingsTable renders records in a styled static table format
func renderSettingsTable(w io.Writer, list []settings.Setting, present map[string]bool) {
	idWidth := 5
	portWidth := 24
	framingWidth := 14
	flowWidth := 10

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("240")).
		PaddingBottom(1)

	cellStyle := lipgloss.NewStyle().
		PaddingRight(2)

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %s",
		idWidth, "ID",
		portWidth, "Port",
		framingWidth, "Framing",
		flowWidth, "Flow",
		"Device")
	fmt.Fprintln(w, headerStyle.Render(header))

	for _, s := range list {
		device := "missing"
		if present == nil {
			device = "-"
		} else if present[s.Port] {
			device = "present"
		}
		row := fmt.Sprintf("%-*d %-*s %-*s %-*s %s",
			idWidth, s.ID,
			portWidth, s.Port,
			framingWidth, s.Framing(),
			flowWidth, s.FlowControl,
			device)
		fmt.Fprintln(w, cellStyle.Render(row))
	}
}

// presentPorts returns the attached devices as a set, or nil when discovery
// fails.
func presentPorts() map[string]bool {
	ports, err := settings.ListPorts()
	if err != nil {
		log.Debug("port discovery failed", "err", err)
		return nil
	}
	set := make(map[string]bool, len(ports))
	for _, p := range ports {
		set[p] = true
	}
	return set
}
