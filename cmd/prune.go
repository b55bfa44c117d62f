/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"os"

	settings "github.com/allbin/serial-settings"
	"github.com/spf13/cobra"
)

// pruneCmd represents the prune command
var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove settings of ports that are no longer attached",
	Long: `Delete every settings record whose port is not currently present under
/dev. Run this after serial devices have been unplugged for good.

Records for ports outside /dev (for example COM3) are removed as well, since
they can never be discovered on this host. Use --dry-run to review first.

Examples:
  serial-settings prune --dry-run
  serial-settings prune`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ports, err := settings.ListPorts()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing ports: %v\n", err)
			os.Exit(1)
		}

		repo := openRepository()
		defer repo.Close()
		ctx := cmd.Context()

		dryRun, _ := cmd.Flags().GetBool("dry-run")
		var removed []settings.Setting
		if dryRun {
			list, err := repo.ListAll(ctx)
			if err != nil {
				exitWithError("listing settings", err)
			}
			removed = absent(list, ports)
		} else {
			removed, err = repo.Prune(ctx, ports)
			if err != nil {
				exitWithError("pruning settings", err)
			}
		}

		if len(removed) == 0 {
			fmt.Println("Every configured port is attached")
			return
		}
		verb := "Removed"
		if dryRun {
			verb = "Would remove"
		}
		for _, s := range removed {
			fmt.Printf("%s %s\n", verb, summary(s))
		}
	},
}

func init() {
	rootCmd.AddCommand(pruneCmd)
	pruneCmd.Flags().Bool("dry-run", false, "Only print what would be removed")
}

// absent returns the records whose port is not in present.
func absent(list []settings.Setting, present []string) []settings.Setting {
	set := make(map[string]bool, len(present))
	for _, p := range present {
		set[p] = true
	}
	var out []settings.Setting
	for _, s := range list {
		if !set[s.Port] {
			out = append(out, s)
		}
	}
	return out
}
