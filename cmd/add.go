/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <port>",
	Short: "Configure a serial port",
	Long: `Create the settings record for a serial port.

Fields not given as flags are taken from the defaults section of the config
file (115200 8N1, no flow control, unless configured otherwise). A port can
only be configured once; use "set" to change an existing record.

Examples:
  serial-settings add /dev/ttyUSB0
  serial-settings add /dev/ttyUSB0 --baud 9600 --parity even
  serial-settings add COM3 -b 19200 -d 7 -s 2 -f rtscts`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		candidate := cfg.Defaults.Setting(args[0])
		if _, err := applyFramingFlags(cmd, &candidate); err != nil {
			exitWithError("parsing flags", err)
		}

		repo := openRepository()
		defer repo.Close()

		created, err := repo.Create(cmd.Context(), candidate)
		if err != nil {
			exitWithError("adding setting", err)
		}
		fmt.Printf("Created %s\n", summary(created))
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addFramingFlags(addCmd)
}
