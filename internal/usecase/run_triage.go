// Package usecase contains application use cases.
package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/runoshun/pcr-triage/internal/domain"
)

// RunTriageInput contains the parameters for one triage run.
// Fields are ordered to minimize memory padding.
type RunTriageInput struct {
	Kind        domain.TriageKind   // Which review to produce
	RepoPath    string              // Local checkout; must exist
	Triage      domain.TriageConfig // Output paths, title, team label and limit
	Remotes     []string            // Remotes tried to resolve owner/name
	RequireRepo bool                // Fail when owner/name cannot be resolved
}

// RunTriageOutput contains the result of a triage run.
// Fields are ordered to minimize memory padding.
type RunTriageOutput struct {
	Repo         *domain.RepoInfo     // Nil when the checkout could not be inspected
	PersistPath  string               // Normalized JSON location
	MarkdownPath string               // Markdown stub location
	Markdown     string               // Rendered stub
	Buckets      []domain.BucketCount // Issue count per rendered bucket
	Issues       int                  // Number of normalized issues
}

// RunTriage fetches, normalizes, classifies and renders one triage kind.
type RunTriage struct {
	fetcher   domain.IssueFetcher
	inspector domain.RepoInspector
	writer    domain.ArtifactWriter
	clock     domain.Clock
	logger    *slog.Logger
}

// NewRunTriage creates a new RunTriage use case.
func NewRunTriage(
	fetcher domain.IssueFetcher,
	inspector domain.RepoInspector,
	writer domain.ArtifactWriter,
	clock domain.Clock,
	logger *slog.Logger,
) *RunTriage {
	return &RunTriage{
		fetcher:   fetcher,
		inspector: inspector,
		writer:    writer,
		clock:     clock,
		logger:    logger,
	}
}

// Execute runs the pipeline. The normalized JSON is written before the
// Markdown stub and is left in place if rendering output fails.
func (uc *RunTriage) Execute(ctx context.Context, in RunTriageInput) (*RunTriageOutput, error) {
	if in.RepoPath == "" {
		return nil, fmt.Errorf("%w: no repository path given", domain.ErrRepoPathNotFound)
	}
	if _, err := os.Stat(in.RepoPath); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrRepoPathNotFound, in.RepoPath)
	}

	repo, err := uc.inspect(in)
	if err != nil {
		return nil, err
	}

	query := domain.QueryFor(in.Kind, in.Triage.Limit)
	if repo != nil {
		query.Repo = repo.Slug
	}

	uc.logger.Info("fetching "+in.Kind.Display(), "limit", query.Limit, "repo", query.Repo)
	data, err := uc.fetcher.Fetch(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("fetch issues: %w", err)
	}

	uc.logger.Info("normalizing issue metadata")
	issues, err := domain.DecodeIssues(data)
	if err != nil {
		return nil, err
	}
	domain.SortByNumber(issues)

	persisted, err := json.MarshalIndent(issues, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: encode issues: %v", domain.ErrWrite, err)
	}
	uc.logger.Info("persisting issues", "count", len(issues), "path", in.Triage.PersistPath)
	if err := uc.writer.Write(in.Triage.PersistPath, persisted); err != nil {
		return nil, wrapWrite(err)
	}

	report, buckets := domain.BuildReport(in.Kind, in.Triage.MarkdownStubTitle, uc.clock.Now(), issues, in.Triage.TeamLabel)
	for _, b := range buckets {
		uc.logger.Debug("classified", "bucket", b.Name, "count", b.Count)
	}
	markdown := domain.RenderReport(report)

	uc.logger.Info("writing markdown stub", "path", in.Triage.MarkdownStubPath)
	if err := uc.writer.Write(in.Triage.MarkdownStubPath, []byte(markdown)); err != nil {
		return nil, wrapWrite(err)
	}

	return &RunTriageOutput{
		Repo:         repo,
		PersistPath:  in.Triage.PersistPath,
		MarkdownPath: in.Triage.MarkdownStubPath,
		Markdown:     markdown,
		Buckets:      buckets,
		Issues:       len(issues),
	}, nil
}

// inspect resolves the GitHub repository behind the checkout.
// Failures are fatal only when the input requires a repository.
func (uc *RunTriage) inspect(in RunTriageInput) (*domain.RepoInfo, error) {
	if uc.inspector == nil {
		if in.RequireRepo {
			return nil, fmt.Errorf("%w: no repository inspector configured", domain.ErrRemoteNotFound)
		}
		return nil, nil
	}

	info, err := uc.inspector.Inspect(in.RepoPath, in.Remotes)
	if err == nil && info != nil {
		uc.logger.Debug("resolved repository", "slug", info.Slug, "remote", info.Remote, "head", info.Head)
		return info, nil
	}
	if err == nil {
		err = domain.ErrRemoteNotFound
	}
	if in.RequireRepo {
		return nil, fmt.Errorf("inspect repository: %w", err)
	}
	uc.logger.Warn("could not resolve GitHub repository, letting gh infer it", "error", err)
	return info, nil
}

func wrapWrite(err error) error {
	if errors.Is(err, domain.ErrWrite) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrWrite, err)
}
