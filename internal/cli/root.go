// Package cli provides the command-line interface for pcr-triage.
package cli

import (
	"fmt"

	"github.com/runoshun/pcr-triage/internal/app"
	"github.com/runoshun/pcr-triage/internal/domain"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	groupTriage = "triage"
	groupSetup  = "setup"
)

// rootOptions holds the global flags shared by every command.
type rootOptions struct {
	repoPath   string
	configPath string
	logLevel   string
	backend    string
}

// NewRootCommand creates the root command for pcr-triage.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var opts rootOptions

	root := &cobra.Command{
		Use:   "pcr-triage",
		Short: "Generate issue triage review stubs",
		Long: `pcr-triage fetches issues from the issue tracker, normalizes their metadata
and renders Markdown review stubs for compiler team triage meetings.

Each triage command writes the normalized issues as JSON and a Markdown stub
with one section per review bucket. Settings are read from config.toml
(or a YAML file given with --config-path); flags override the file.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// The template does not depend on any configuration source.
			if cmd.Name() == "template" {
				return nil
			}

			cfg, err := c.ConfigLoader.Load(opts.configPath)
			if err != nil {
				return err
			}
			for _, w := range cfg.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}

			opts.apply(cmd, cfg)
			c.ConfigPath = opts.configPath
			if err := c.Configure(cfg, cmd.ErrOrStderr()); err != nil {
				return err
			}
			c.Logger.Debug("configuration loaded",
				"path", opts.configPath,
				"repo_path", cfg.RepoPath,
				"backend", cfg.Fetch.Backend,
				"log_level", cfg.Log.Level,
			)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.repoPath, "repo-path", "", "Path to a local checkout of the repository (required here or in the config file)")
	flags.StringVar(&opts.configPath, "config-path", domain.ConfigFileName, "Configuration file (.toml, .yaml or .yml)")
	flags.StringVar(&opts.logLevel, "log-level", domain.LogLevelInfo, "Diagnostic verbosity: info, debug or trace")
	flags.StringVar(&opts.backend, "backend", domain.BackendGH, "Issue source: gh (gh CLI) or api (GitHub REST API)")

	root.AddGroup(
		&cobra.Group{ID: groupTriage, Title: "Triage Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	for _, kind := range domain.AllTriageKinds() {
		triageCmd := newTriageCommand(c, kind)
		triageCmd.GroupID = groupTriage
		root.AddCommand(triageCmd)
	}

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup
	root.AddCommand(configCmd)

	return root
}

// apply copies explicitly set global flags over cfg.
func (o *rootOptions) apply(cmd *cobra.Command, cfg *domain.Config) {
	if cmd.Flags().Changed("repo-path") {
		cfg.RepoPath = o.repoPath
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if cmd.Flags().Changed("backend") {
		cfg.Fetch.Backend = o.backend
	}
}
