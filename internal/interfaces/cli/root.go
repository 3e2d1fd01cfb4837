// Package cli defines the reclamos command tree: serving the API, running
// migrations, training the department classifier, and seeding demo data.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SolBenven/proyecto-final/internal/config"
	"github.com/SolBenven/proyecto-final/internal/infrastructure/monitoring/logging"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// rootOptions holds the global flags shared by every subcommand.
type rootOptions struct {
	configPath string
}

// loadConfig resolves the effective configuration: the file named by --config
// when given, environment variables otherwise.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.configPath != "" {
		return config.Load(o.configPath)
	}
	return config.LoadFromEnv()
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:     "reclamos",
		Short:   "Claim routing engine for university infrastructure claims",
		Long:    "reclamos files, routes, and manages infrastructure claims:\nautomatic department classification, duplicate detection, adhesions,\nstatus tracking with notifications, and administrative analytics.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),

		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file path (default: environment variables)")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newTrainCommand(opts))
	cmd.AddCommand(newSeedCommand(opts))
	return cmd
}

// Execute runs the command tree.
func Execute() error {
	return NewRootCommand().Execute()
}

// newLogger builds the process logger from the loaded configuration.
func newLogger(cfg *config.Config) logging.Logger {
	return logging.NewLogger(cfg.Log)
}
