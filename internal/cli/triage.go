package cli

import (
	"errors"
	"fmt"

	"github.com/runoshun/pcr-triage/internal/app"
	"github.com/runoshun/pcr-triage/internal/domain"
	"github.com/runoshun/pcr-triage/internal/usecase"
	"github.com/spf13/cobra"
)

// triageOptions holds per-kind flags. Unset flags keep the configured value.
type triageOptions struct {
	persistPath       string
	markdownStubPath  string
	markdownStubTitle string
	teamLabel         string
	limit             int
	preview           bool
}

var triageDescriptions = map[domain.TriageKind]struct{ short, long string }{
	domain.TriageKindPHigh: {
		short: "Review P-high issues",
		long: `Fetch open P-high issues and render a review stub with three sections:
issues missing a team label, team issues missing an owner (no WG- label and no
assignee) and team issues that have an owner.`,
	},
	domain.TriageKindCompilerTrackingIssue: {
		short: "Review T-compiler-only tracking issues",
		long: `Fetch open C-tracking-issue issues labeled T-compiler and no other team,
and render a review stub with one table per issue.`,
	},
	domain.TriageKindNoTeam: {
		short: "Review tracking issues without a team label",
		long: `Fetch open C-tracking-issue issues and render a review stub listing the ones
that carry no T- label.`,
	},
}

// newTriageCommand creates the command producing the review stub for kind.
func newTriageCommand(c *app.Container, kind domain.TriageKind) *cobra.Command {
	var opts triageOptions
	desc := triageDescriptions[kind]

	cmd := &cobra.Command{
		Use:   string(kind),
		Short: desc.short,
		Long:  desc.long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tc := c.Config.Triage(kind)
			opts.apply(cmd, &tc)
			if tc.Limit <= 0 {
				return fmt.Errorf("--limit must be positive, got %d", tc.Limit)
			}
			if err := domain.ValidateTeamLabel(tc.TeamLabel); err != nil {
				return fmt.Errorf("--team-label: %w", err)
			}

			uc, err := c.RunTriageUseCase()
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), usecase.RunTriageInput{
				Kind:        kind,
				RepoPath:    c.Config.RepoPath,
				Triage:      tc,
				Remotes:     c.Config.Fetch.Remotes,
				RequireRepo: c.Config.Fetch.Backend == domain.BackendAPI,
			})
			if err != nil {
				c.Logger.Error("triage failed", "kind", string(kind), "error", err)
				if errors.Is(err, domain.ErrRepoPathNotFound) && c.Config.RepoPath == "" {
					return fmt.Errorf("%w (use --repo-path or set repo_path in %s)", err, c.ConfigPath)
				}
				return err
			}

			printSummary(cmd.ErrOrStderr(), kind, out)

			if opts.preview {
				return renderPreview(cmd.OutOrStdout(), out.Markdown)
			}
			return nil
		},
	}

	defaults := domain.NewDefaultConfig().Triage(kind)
	f := cmd.Flags()
	f.StringVar(&opts.persistPath, "persist-path", defaults.PersistPath, "Where to write the normalized issues as JSON")
	f.StringVar(&opts.markdownStubPath, "markdown-stub-path", defaults.MarkdownStubPath, "Where to write the Markdown review stub")
	f.StringVar(&opts.markdownStubTitle, "markdown-stub-title", defaults.MarkdownStubTitle, "Title of the Markdown review stub")
	f.StringVar(&opts.teamLabel, "team-label", defaults.TeamLabel, "Team label whose issues are partitioned by ownership")
	f.IntVar(&opts.limit, "limit", defaults.Limit, "Maximum number of issues to fetch")
	f.BoolVar(&opts.preview, "preview", false, "Render the generated stub to stdout")

	return cmd
}

// apply copies explicitly set flags over tc.
func (o *triageOptions) apply(cmd *cobra.Command, tc *domain.TriageConfig) {
	f := cmd.Flags()
	if f.Changed("persist-path") {
		tc.PersistPath = o.persistPath
	}
	if f.Changed("markdown-stub-path") {
		tc.MarkdownStubPath = o.markdownStubPath
	}
	if f.Changed("markdown-stub-title") {
		tc.MarkdownStubTitle = o.markdownStubTitle
	}
	if f.Changed("team-label") {
		tc.TeamLabel = o.teamLabel
	}
	if f.Changed("limit") {
		tc.Limit = o.limit
	}
}
