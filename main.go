// package main is the entry point for the pr-checks tool
package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/alan/pr-checks/cmd"
	"github.com/alan/pr-checks/cmd/checklabels"
	"github.com/alan/pr-checks/cmd/checkoca"
	configcmd "github.com/alan/pr-checks/cmd/config"
	"github.com/alan/pr-checks/internal/config"
	"github.com/spf13/cobra"
)

// Exit codes
const (
	exitCheckFailed = 1
	exitError       = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	return exitCode(rootCmd.Execute())
}

func newRootCmd() *cobra.Command {
	var configFile string
	var logLevel string
	var logFormat string

	rootCmd := &cobra.Command{
		Use:   "pr-checks",
		Short: "Pull request gate checks for GitHub Actions",
		Long: `pr-checks runs pull request gate checks from a GitHub Actions workflow:
check-oca verifies that every commit author has a signed Oracle Contributor Agreement,
check-pr-labels requires at least one valid label and publishes a commit status.

Exit code 0 means the check passed, 1 that it failed, 2 that it could not run.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			setupLogger(logLevel, logFormat)
		},
	}

	// Add global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", ".github/pr-checks.yaml", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&logFormat, "log-format", "f", "text", "Log format (text, json)")

	// Create commands with access to the global config file
	rootCmd.AddCommand(configcmd.NewConfigCmd(&configFile, config.LoadConfig, config.SaveConfig))
	rootCmd.AddCommand(checkoca.NewCheckOCACmd(&configFile, config.LoadConfig))
	rootCmd.AddCommand(checklabels.NewCheckLabelsCmd(&configFile, config.LoadConfig))

	return rootCmd
}

// exitCode maps a failing verdict to 1 and every other error to 2
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, cmd.ErrCheckFailed):
		return exitCheckFailed
	default:
		return exitError
	}
}

func setupLogger(level, format string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	}

	slog.SetDefault(slog.New(handler))
}
