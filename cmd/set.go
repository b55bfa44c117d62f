/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// setCmd represents the set command
var setCmd = &cobra.Command{
	Use:   "set <id|port>",
	Short: "Change the settings of a configured port",
	Long: `Update an existing settings record.

Only the fields given as flags change; everything else keeps its stored
value. The record may be moved to a different port with --port as long as
no other record uses it.

Examples:
  serial-settings set 1 --baud 19200
  serial-settings set /dev/ttyUSB0 --parity none --stop-bits 1
  serial-settings set /dev/ttyUSB0 --port /dev/ttyUSB1`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repo := openRepository()
		defer repo.Close()
		ctx := cmd.Context()

		current := mustResolve(ctx, repo, args[0])
		candidate := current

		changed, err := applyFramingFlags(cmd, &candidate)
		if err != nil {
			exitWithError("parsing flags", err)
		}
		if cmd.Flags().Changed("port") {
			candidate.Port, _ = cmd.Flags().GetString("port")
			changed = true
		}
		if !changed {
			fmt.Fprintln(os.Stderr, "Nothing to change; give at least one setting flag")
			os.Exit(1)
		}

		updated, err := repo.Update(ctx, current.ID, candidate)
		if err != nil {
			exitWithError("updating setting", err)
		}
		fmt.Printf("Updated %s\n", summary(updated))
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
	addFramingFlags(setCmd)
	setCmd.Flags().String("port", "", "Move the record to another port")
}
