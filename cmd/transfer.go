/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	settings "github.com/allbin/serial-settings"
	"github.com/spf13/cobra"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all settings as YAML or TOML",
	Long: `Export every settings record as a YAML document that "import" accepts.
Record ids are not exported.

Examples:
  serial-settings export > settings.yaml
  serial-settings export -o settings.toml
  serial-settings export -o /etc/serial-settings/backup.yaml`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		repo := openRepository()
		defer repo.Close()

		path, _ := cmd.Flags().GetString("output")
		format := documentFormat(cmd, path)

		if path == "" {
			if err := repo.ExportAs(cmd.Context(), os.Stdout, format); err != nil {
				exitWithError("exporting settings", err)
			}
			return
		}

		if err := exportFile(cmd.Context(), repo, path, format); err != nil {
			exitWithError("exporting settings", err)
		}
	},
}

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Load settings from a YAML or TOML document",
	Long: `Import settings records from a YAML document as written by "export".

Each entry is validated like "add". Entries for ports that are already
configured are skipped unless --overwrite is given, in which case the stored
record is replaced. Invalid entries are reported and the command exits
non-zero, but valid entries are still imported.

YAML is read unless the file ends in .toml or --format is given.

Document format:
  settings:
    - port: /dev/ttyUSB0
      baud_rate: 9600
      data_bits: 8
      stop_bits: ONE
      parity: NONE
      flow_control: NONE

Examples:
  serial-settings import settings.yaml
  cat settings.yaml | serial-settings import - --overwrite`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var r io.Reader = os.Stdin
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				exitWithError("opening import file", err)
			}
			defer f.Close()
			r = f
		}
		overwrite, _ := cmd.Flags().GetBool("overwrite")
		format := documentFormat(cmd, args[0])

		repo := openRepository()
		defer repo.Close()

		report, err := repo.ImportAs(cmd.Context(), r, format, overwrite)
		for _, s := range report.Created {
			fmt.Printf("Created %s\n", summary(s))
		}
		for _, s := range report.Updated {
			fmt.Printf("Updated %s\n", summary(s))
		}
		for _, port := range report.Skipped {
			fmt.Printf("Skipped %s: already configured\n", port)
		}
		if err != nil {
			exitWithError("importing settings", err)
		}

		if len(report.Rejected) == 0 {
			return
		}
		indexes := make([]int, 0, len(report.Rejected))
		for i := range report.Rejected {
			indexes = append(indexes, i)
		}
		sort.Ints(indexes)
		for _, i := range indexes {
			printError(os.Stderr, fmt.Sprintf("in entry %d", i+1), report.Rejected[i])
		}
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)

	exportCmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")
	importCmd.Flags().Bool("overwrite", false, "Replace records of ports that are already configured")
	for _, c := range []*cobra.Command{exportCmd, importCmd} {
		c.Flags().String("format", "", "Document format: yaml or toml (default from file extension, else yaml)")
	}
}

// exportFile writes the export to path, reporting a failed close.
func exportFile(ctx context.Context, repo *settings.Repository, path string, format settings.Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := repo.ExportAs(ctx, f, format); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	return nil
}

// documentFormat returns the --format flag, or the format implied by path.
func documentFormat(cmd *cobra.Command, path string) settings.Format {
	raw, _ := cmd.Flags().GetString("format")
	if raw == "" {
		return settings.FormatForPath(path)
	}
	f, err := settings.ParseFormat(raw)
	if err != nil {
		exitWithError("parsing flags", err)
	}
	return f
}
