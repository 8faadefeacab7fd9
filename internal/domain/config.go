package domain

import (
	"fmt"
	"strings"
)

// ConfigFileName is the default configuration file name.
const ConfigFileName = "config.toml"

// Log levels accepted by --log-level.
const (
	LogLevelInfo  = "info"
	LogLevelDebug = "debug"
	LogLevelTrace = "trace"
)

// Fetch backends.
const (
	BackendGH  = "gh"  // `gh issue list` subprocess
	BackendAPI = "api" // GitHub REST API
)

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings              []string     `toml:"-" yaml:"-"`
	RepoPath              string       `toml:"repo_path,omitempty" yaml:"repo_path,omitempty"`
	Log                   LogConfig    `toml:"log" yaml:"log"`
	Fetch                 FetchConfig  `toml:"fetch" yaml:"fetch"`
	PHigh                 TriageConfig `toml:"p_high" yaml:"p_high"`
	CompilerTrackingIssue TriageConfig `toml:"compiler_tracking_issue" yaml:"compiler_tracking_issue"`
	NoTeam                TriageConfig `toml:"no_team" yaml:"no_team"`
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"` // info, debug or trace
}

// FetchConfig holds issue fetching settings from [fetch] section.
type FetchConfig struct {
	Backend string   `toml:"backend" yaml:"backend"` // "gh" (default) or "api"
	GHPath  string   `toml:"gh_path" yaml:"gh_path"` // gh executable
	Remotes []string `toml:"remotes" yaml:"remotes"` // Remotes tried in order to find owner/name
}

// TriageConfig holds per-kind settings.
type TriageConfig struct {
	PersistPath       string `toml:"persist_path" yaml:"persist_path"`             // Normalized JSON output
	MarkdownStubPath  string `toml:"markdown_stub_path" yaml:"markdown_stub_path"` // Markdown output
	MarkdownStubTitle string `toml:"markdown_stub_title" yaml:"markdown_stub_title"`
	TeamLabel         string `toml:"team_label" yaml:"team_label"`
	Limit             int    `toml:"limit" yaml:"limit"`
}

// NewDefaultConfig returns the built-in configuration.
func NewDefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: LogLevelInfo},
		Fetch: FetchConfig{
			Backend: BackendGH,
			GHPath:  "gh",
			Remotes: []string{"upstream", "origin"},
		},
		PHigh: TriageConfig{
			PersistPath:       "p-high-t-compiler-issues.json",
			MarkdownStubPath:  "issue-review-stub.md",
			MarkdownStubTitle: "2024 Q3 T-compiler P-high Issue Review",
			TeamLabel:         DefaultTeamLabel,
			Limit:             100,
		},
		CompilerTrackingIssue: TriageConfig{
			PersistPath:       "compiler-tracking-issues.json",
			MarkdownStubPath:  "compiler-tracking-issue-review-stub.md",
			MarkdownStubTitle: "T-compiler-only Tracking Issue Review",
			TeamLabel:         DefaultTeamLabel,
			Limit:             200,
		},
		NoTeam: TriageConfig{
			PersistPath:       "no-team-tracking-issues.json",
			MarkdownStubPath:  "no-team-tracking-issue-review-stub.md",
			MarkdownStubTitle: "Tracking Issues Without Team Label Review",
			TeamLabel:         DefaultTeamLabel,
			Limit:             200,
		},
	}
}

// Triage returns the settings for kind.
func (c *Config) Triage(kind TriageKind) TriageConfig {
	switch kind {
	case TriageKindPHigh:
		return c.PHigh
	case TriageKindCompilerTrackingIssue:
		return c.CompilerTrackingIssue
	default:
		return c.NoTeam
	}
}

// TriageRef returns a pointer to the settings for kind.
func (c *Config) TriageRef(kind TriageKind) *TriageConfig {
	switch kind {
	case TriageKindPHigh:
		return &c.PHigh
	case TriageKindCompilerTrackingIssue:
		return &c.CompilerTrackingIssue
	default:
		return &c.NoTeam
	}
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case LogLevelInfo, LogLevelDebug, LogLevelTrace:
	default:
		return fmt.Errorf("%w: %q (want info, debug or trace)", ErrInvalidLogLevel, c.Log.Level)
	}
	switch c.Fetch.Backend {
	case BackendGH, BackendAPI:
	default:
		return fmt.Errorf("%w: %q (want gh or api)", ErrInvalidBackend, c.Fetch.Backend)
	}
	for _, kind := range AllTriageKinds() {
		if err := ValidateTeamLabel(c.Triage(kind).TeamLabel); err != nil {
			return fmt.Errorf("%s.team_label: %w", kind.ConfigKey(), err)
		}
	}
	return nil
}

// ValidateTeamLabel rejects labels that NoTeam would not count as a team.
func ValidateTeamLabel(label string) error {
	if !strings.HasPrefix(label, TeamLabelPrefix) || len(label) == len(TeamLabelPrefix) {
		return fmt.Errorf("%w: %q", ErrInvalidTeamLabel, label)
	}
	return nil
}
