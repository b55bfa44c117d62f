/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	settings "github.com/allbin/serial-settings"
	"github.com/allbin/serial-settings/internal/config"
	"github.com/allbin/serial-settings/internal/sqlstore"
	"github.com/spf13/cobra"
)

var (
	v       = config.New()
	cfgFile string
	cfg     config.Config
	log     = slog.New(slog.DiscardHandler)
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "serial-settings",
	Short: "Manage per-port serial terminal settings",
	Long: `Manage the serial terminal settings stored for each serial port.

Every configured port has exactly one record holding its baud rate, data
bits, stop bits, parity and flow control. Records are validated before
they are stored and a port can only be configured once.

Settings are kept in a SQLite database. Its location and the defaults used
for new records can be changed in the config file, through SERIAL_SETTINGS_*
environment variables or with flags.

Examples:
  serial-settings add /dev/ttyUSB0 --baud 9600 --parity even
  serial-settings ls -t
  serial-settings set /dev/ttyUSB0 --flow-control rtscts
  serial-settings prune --dry-run`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loaded, err := config.Load(v, cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
		log = cfg.NewLogger()
		if used := config.ConfigFileUsed(v); used != "" {
			log.Debug("config loaded", "file", used)
		}
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/serial-settings/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "settings database path")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	_ = v.BindPFlag("database", rootCmd.PersistentFlags().Lookup("db"))
	_ = v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// openRepository opens the configured database. Callers close the returned
// repository.
func openRepository() *settings.Repository {
	var opts []sqlstore.Option
	if level, err := config.ParseLevel(cfg.LogLevel); err == nil && level <= slog.LevelDebug {
		opts = append(opts, sqlstore.WithSQLLog())
	}

	store, err := sqlstore.Open(cfg.Database, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening settings database: %v\n", err)
		os.Exit(1)
	}
	log.Debug("settings database opened", "path", cfg.Database)

	return settings.NewRepository(store,
		settings.WithValidator(cfg.Validator()),
		settings.WithLogger(log),
	)
}
