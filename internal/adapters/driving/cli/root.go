package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/transync-cli/internal/core/domain"
	"github.com/custodia-labs/transync-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "transync",
	Short: "Push and pull translation documents",
	Long: `transync synchronises local translation files with a translation server.

Project settings are read from transync.toml in the working directory,
server credentials from ~/.transync/config.toml. Command-line flags take
precedence over both.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		quiet, _ := cmd.Flags().GetBool("quiet")
		verbose, _ := cmd.Flags().GetBool("verbose")
		switch {
		case verbose:
			logger.SetLevel(logger.LevelVerbose)
		case quiet:
			logger.SetLevel(logger.LevelQuiet)
		default:
			logger.SetLevel(logger.LevelNormal)
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "enable debug logging")
	flags.BoolP("quiet", "q", false, "only log warnings")
	flags.BoolP("batch", "B", false, "batch mode: never ask for confirmation")
	flags.String("config", "", "project configuration file (default ./transync.toml)")
	flags.String("user-config", "", "user configuration file (default ~/.transync/config.toml)")
	flags.String("server", "", "named server from the user configuration")
	flags.String("url", "", "translation server URL")
	flags.String("username", "", "server username")
	flags.String("key", "", "server API key")
	flags.String("project", "", "project ID")
	flags.String("project-version", "", "project version ID")
	flags.String("project-type", "", "project type, e.g. properties or utf8properties")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// ExitCode maps a command error to a process exit status:
// 0 on success, 2 when the user declined a confirmation, 1 otherwise.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, domain.ErrAborted):
		return 2
	default:
		return 1
	}
}
