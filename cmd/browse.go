/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"os"

	settings "github.com/allbin/serial-settings"
	"github.com/allbin/serial-settings/internal/tui/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse configured ports interactively",
	Long: `Open an interactive table of all settings records.

The table shows each record's framing and whether its device is attached.
Records can be deleted from the browser after confirmation.

Keys:
  ↑/k ↓/j   move
  d         delete the highlighted record (confirm with y)
  r         refresh
  ?         toggle help
  q         quit`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		repo := openRepository()
		defer repo.Close()

		m := models.NewBrowserModel(cmd.Context(), repo, settings.ListPorts)
		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
