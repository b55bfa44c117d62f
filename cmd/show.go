/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"os"

	settings "github.com/allbin/serial-settings"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <id|port>",
	Short: "Show the settings of one port",
	Long: `Display the stored settings record for a port, looked up by record id or
by port name.

Examples:
  serial-settings show 1
  serial-settings show /dev/ttyUSB0
  serial-settings show /dev/ttyUSB0 --yaml`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repo := openRepository()
		defer repo.Close()

		s := mustResolve(cmd.Context(), repo, args[0])

		asYAML, _ := cmd.Flags().GetBool("yaml")
		if !asYAML {
			printSetting(os.Stdout, s)
			return
		}
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(settings.Document{Settings: []settings.Setting{s}}); err != nil {
			exitWithError("encoding setting", err)
		}
		_ = enc.Close()
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().Bool("yaml", false, "Print the record as an importable YAML document")
}
