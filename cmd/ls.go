/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// lsCmd represents the ls command
var lsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List configured serial ports",
	Long: `List every stored settings record in id order.

With --table the records are rendered as a styled table including whether
each port's device is currently attached.

Examples:
  serial-settings ls
  serial-settings ls -t`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		repo := openRepository()
		defer repo.Close()

		list, err := repo.ListAll(cmd.Context())
		if err != nil {
			exitWithError("listing settings", err)
		}
		if len(list) == 0 {
			fmt.Println("No serial ports configured")
			return
		}

		tableFormat, _ := cmd.Flags().GetBool("table")
		if tableFormat {
			fmt.Printf("%d configured port(s):\n\n", len(list))
			renderSettingsTable(os.Stdout, list, presentPorts())
			return
		}
		for _, s := range list {
			fmt.Println(summary(s))
		}
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
	lsCmd.Flags().BoolP("table", "t", false, "Display output in a styled table format")
}
