// Package ghcli fetches issues through the gh command-line client.
package ghcli

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/runoshun/pcr-triage/internal/domain"
	"github.com/runoshun/pcr-triage/internal/infra/logging"
)

// Ensure Client implements domain.IssueFetcher.
var _ domain.IssueFetcher = (*Client)(nil)

// Client runs `gh issue list` inside a repository checkout.
// Fields are ordered to minimize memory padding.
type Client struct {
	executor domain.CommandExecutor
	logger   *slog.Logger
	ghPath   string // gh executable
	repoDir  string // Working directory; gh infers the repository from it
}

// NewClient creates a new gh client.
func NewClient(executor domain.CommandExecutor, logger *slog.Logger, ghPath, repoDir string) *Client {
	if ghPath == "" {
		ghPath = "gh"
	}
	return &Client{
		executor: executor,
		logger:   logger,
		ghPath:   ghPath,
		repoDir:  repoDir,
	}
}

// Fetch runs gh and returns its stdout. A non-zero exit is reported as
// domain.ErrExternalCommand carrying gh's stderr.
func (c *Client) Fetch(ctx context.Context, query domain.FetchQuery) ([]byte, error) {
	cmd := domain.NewCommand(c.ghPath, BuildArgs(query), c.repoDir)
	c.logger.Log(ctx, logging.LevelTrace, "running gh", "command", cmd.String(), "dir", c.repoDir)

	var stdout, stderr bytes.Buffer
	if err := c.executor.ExecuteWithContext(ctx, cmd, &stdout, &stderr); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("%w: `gh` cli command failed: %s", domain.ErrExternalCommand, msg)
	}
	return stdout.Bytes(), nil
}

// BuildArgs returns the gh arguments for query.
func BuildArgs(query domain.FetchQuery) []string {
	args := []string{"issue", "list"}
	if query.Repo != "" {
		args = append(args, "--repo", query.Repo)
	}
	for _, l := range query.Labels {
		args = append(args, "--label", l)
	}
	if query.Search != "" {
		args = append(args, "--search", query.Search)
	}
	if query.Limit > 0 {
		args = append(args, "--limit", strconv.Itoa(query.Limit))
	}
	args = append(args, "--json", query.FieldList())
	return args
}
