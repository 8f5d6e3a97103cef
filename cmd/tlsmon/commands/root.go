package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sciclon2/tls-monitoring/pkg/config"
)

const cliExecutable = "tlsmon"

// NewCommand constructs the top-level tlsmon CLI command, wiring global
// flags, configuration loading and the global log level.
func NewCommand() *cobra.Command {
	var (
		configFile     string
		verbosityCount int
		verbose        bool
	)

	cmd := &cobra.Command{
		Use:   cliExecutable,
		Short: "Tlsmon monitors TLS certificate expiration for a list of hosts",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			manager := config.NewManager()
			if err := manager.Load(cmd.Flags(), configFile); err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			cfg := manager.Get()

			// Configure global log level based on verbosity flags.
			// If explicit --verbose is set, show debug and above.
			// Else use -v count: 0=>Error, 1=>Info, 2+=>Debug.
			if verbose || cfg.Log.Level == "debug" {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				switch {
				case verbosityCount <= 0:
					zerolog.SetGlobalLevel(zerolog.ErrorLevel)
				case verbosityCount == 1:
					zerolog.SetGlobalLevel(zerolog.InfoLevel)
				default:
					zerolog.SetGlobalLevel(zerolog.DebugLevel)
				}
			}

			ctx := config.WithContext(cmd.Context(), cfg)
			cmd.SetContext(ctx)
			if root := cmd.Root(); root != nil && root != cmd {
				root.SetContext(ctx)
			}
			return nil
		},
	}

	cmd.SilenceUsage = true

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file path")
	cmd.PersistentFlags().CountVarP(&verbosityCount, "verbosity", "v", "Increase logging verbosity (repeatable)")
	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging (shows service layer logs)")

	config.BindFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewCheckCommand())
	cmd.AddCommand(NewVersionCommand())

	return cmd
}
