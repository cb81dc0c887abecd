// Package config implements the config command for initializing and updating the pr-checks configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/alan/pr-checks/cmd"
	"github.com/spf13/cobra"
)

// configOptions holds the values given on the command line; zero values leave the file untouched
type configOptions struct {
	ocaURL          string
	exemptDomains   []string
	statusContext   string
	statusTargetURL string
	signedLabel     string
	notSignedLabel  string
	pollAttempts    int
	pollInterval    time.Duration
}

// NewConfigCmd creates and returns the config command
func NewConfigCmd(globalConfigFile *string, loadConfig func(string) (*cmd.Config, error), saveConfig func(string, *cmd.Config) error) *cobra.Command {
	opts := &configOptions{}

	cobraCmd := &cobra.Command{
		Use:   "config",
		Short: "Initialize or update the pr-checks configuration file",
		Long: `Config writes the pr-checks YAML configuration file, by default
.github/pr-checks.yaml. An existing file is loaded first and only the values
given as flags are changed; everything else keeps its current or default value.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfig(*globalConfigFile, opts, loadConfig, saveConfig)
		},
	}
	addConfigFlags(cobraCmd, opts)

	return cobraCmd
}

// addConfigFlags adds all flags to the config command
func addConfigFlags(cobraCmd *cobra.Command, opts *configOptions) {
	cobraCmd.Flags().StringVar(&opts.ocaURL, "oca-url", "", "Base URL of the OCA membership-status service")
	cobraCmd.Flags().StringSliceVar(&opts.exemptDomains, "exempt-domain", nil, "Email domain whose authors skip OCA verification (repeatable)")
	cobraCmd.Flags().StringVar(&opts.statusContext, "status-context", "", "Context of the commit status published by check-pr-labels")
	cobraCmd.Flags().StringVar(&opts.statusTargetURL, "status-target-url", "", "Target URL of the commit status (defaults to the PR page)")
	cobraCmd.Flags().StringVar(&opts.signedLabel, "signed-label", "", "Label attached when every author has a signed OCA")
	cobraCmd.Flags().StringVar(&opts.notSignedLabel, "not-signed-label", "", "Label attached when an author has no signed OCA")
	cobraCmd.Flags().IntVar(&opts.pollAttempts, "poll-attempts", 0, "Maximum merge commit polls under pull_request_target")
	cobraCmd.Flags().DurationVar(&opts.pollInterval, "poll-interval", 0, "Delay between merge commit polls")
}

func runConfig(configFile string, opts *configOptions, loadConfig func(string) (*cmd.Config, error), saveConfig func(string, *cmd.Config) error) error {
	if err := validateOptions(opts); err != nil {
		return err
	}

	config, err := loadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load existing configuration: %w", err)
	}
	isUpdate := fileExists(configFile)

	updateConfigWithProvidedValues(config, opts)

	if err := saveConfig(configFile, config); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	displayConfigSuccess(configFile, config, isUpdate)
	return nil
}

// validateOptions rejects flag values that would produce an unusable configuration
func validateOptions(opts *configOptions) error {
	if opts.ocaURL != "" {
		u, err := url.Parse(opts.ocaURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: --oca-url must be an absolute URL, got %q", cmd.ErrInvalidArguments, opts.ocaURL)
		}
	}
	if opts.pollAttempts < 0 {
		return fmt.Errorf("%w: --poll-attempts must not be negative", cmd.ErrInvalidArguments)
	}
	if opts.pollInterval < 0 {
		return fmt.Errorf("%w: --poll-interval must not be negative", cmd.ErrInvalidArguments)
	}
	return nil
}

// updateConfigWithProvidedValues updates config with any non-empty provided values
func updateConfigWithProvidedValues(config *cmd.Config, opts *configOptions) {
	if opts.ocaURL != "" {
		config.OCA.BaseURL = opts.ocaURL
	}
	if len(opts.exemptDomains) > 0 {
		config.OCA.ExemptEmailDomains = opts.exemptDomains
	}
	if opts.statusContext != "" {
		config.Status.Context = opts.statusContext
	}
	if opts.statusTargetURL != "" {
		config.Status.TargetURL = opts.statusTargetURL
	}
	if opts.signedLabel != "" {
		config.Labels.Signed.Name = opts.signedLabel
	}
	if opts.notSignedLabel != "" {
		config.Labels.NotSigned.Name = opts.notSignedLabel
	}
	if opts.pollAttempts > 0 {
		config.Poll.Attempts = opts.pollAttempts
	}
	if opts.pollInterval > 0 {
		config.Poll.Interval = opts.pollInterval
	}
}

// displayConfigSuccess shows the configuration success message
func displayConfigSuccess(configFile string, config *cmd.Config, isUpdate bool) {
	action := "initialized"
	if isUpdate {
		action = "updated"
	}
	ocaURL := config.OCA.BaseURL
	if ocaURL == "" {
		ocaURL = "(not set, use OCA_API_URL)"
	}
	fmt.Printf("✅ Successfully %s %s with:\n", action, configFile)
	fmt.Printf("  OCA Service: %s\n", ocaURL)
	fmt.Printf("  Exempt Domains: %s\n", strings.Join(config.OCA.ExemptEmailDomains, ", "))
	fmt.Printf("  Labels: %s / %s\n", config.Labels.Signed.Name, config.Labels.NotSigned.Name)
	fmt.Printf("  Status Context: %s\n", config.Status.Context)
	fmt.Printf("  Merge Commit Polling: %d x %s\n", config.Poll.Attempts, config.Poll.Interval)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
