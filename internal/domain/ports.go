package domain

import (
	"context"
	"io"
	"time"
)

// IssueFetcher retrieves raw issue JSON (an array in the gh schema).
type IssueFetcher interface {
	// Fetch returns the complete response for query.
	Fetch(ctx context.Context, query FetchQuery) ([]byte, error)
}

// ArtifactWriter persists generated artifacts.
type ArtifactWriter interface {
	// Write stores data at path, replacing any existing file.
	Write(path string, data []byte) error
}

// RepoInspector reads metadata of a local checkout.
type RepoInspector interface {
	// Inspect resolves repository metadata for the checkout at path.
	Inspect(path string, remotes []string) (*RepoInfo, error)
}

// RepoInfo describes a local checkout.
type RepoInfo struct {
	Root   string // Worktree root
	Remote string // Remote used to resolve Slug
	Slug   string // GitHub owner/name
	Head   string // HEAD commit hash (empty for unborn HEAD)
}

// CommandExecutor runs external commands.
type CommandExecutor interface {
	// ExecuteWithContext runs cmd writing its output to stdout and stderr.
	ExecuteWithContext(ctx context.Context, cmd *ExecCommand, stdout, stderr io.Writer) error
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the configuration at path merged over defaults.
	// A missing file yields the defaults.
	Load(path string) (*Config, error)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
