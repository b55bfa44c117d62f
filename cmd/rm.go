/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// rmCmd represents the rm command
var rmCmd = &cobra.Command{
	Use:     "rm <id|port>...",
	Aliases: []string{"remove", "delete"},
	Short:   "Remove the settings of one or more ports",
	Long: `Delete settings records by record id or port name.

Removing a port that is not configured is not an error.

Examples:
  serial-settings rm 3
  serial-settings rm /dev/ttyUSB0 /dev/ttyUSB1`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repo := openRepository()
		defer repo.Close()
		ctx := cmd.Context()

		for _, arg := range args {
			s, found, err := resolveSetting(ctx, repo, arg)
			if err != nil {
				exitWithError("looking up setting", err)
			}
			if !found {
				fmt.Printf("%s: not configured\n", arg)
				continue
			}
			deleted, err := repo.Delete(ctx, s.ID)
			if err != nil {
				exitWithError("removing setting", err)
			}
			if deleted {
				fmt.Printf("Removed %s\n", summary(s))
			} else {
				fmt.Printf("%s: already removed\n", arg)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
