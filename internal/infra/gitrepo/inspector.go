// Package gitrepo inspects a local checkout with go-git.
package gitrepo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/runoshun/pcr-triage/internal/domain"
)

// Ensure Inspector implements domain.RepoInspector.
var _ domain.RepoInspector = (*Inspector)(nil)

// Inspector resolves the GitHub repository behind a checkout.
type Inspector struct{}

// NewInspector creates a new Inspector.
func NewInspector() *Inspector {
	return &Inspector{}
}

// Inspect opens the repository containing path and resolves owner/name from
// the first remote in remotes that points at GitHub.
func (i *Inspector) Inspect(path string, remotes []string) (*domain.RepoInfo, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open git repository: %w", err)
	}

	info := &domain.RepoInfo{}
	if wt, wtErr := repo.Worktree(); wtErr == nil {
		info.Root = wt.Filesystem.Root()
	}

	head, err := repo.Head()
	switch {
	case err == nil:
		info.Head = head.Hash().String()
	case errors.Is(err, plumbing.ErrReferenceNotFound):
		// Unborn HEAD
	default:
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}

	for _, name := range remotes {
		remote, err := repo.Remote(name)
		if err != nil {
			if errors.Is(err, git.ErrRemoteNotFound) {
				continue
			}
			return nil, fmt.Errorf("read remote %s: %w", name, err)
		}
		for _, u := range remote.Config().URLs {
			if slug, ok := ParseGitHubSlug(u); ok {
				info.Remote = name
				info.Slug = slug
				return info, nil
			}
		}
	}

	return info, fmt.Errorf("%w (tried %s)", domain.ErrRemoteNotFound, strings.Join(remotes, ", "))
}

// ParseGitHubSlug extracts owner/name from a GitHub remote URL.
// Supported forms: https://github.com/o/n(.git), ssh://git@github.com/o/n(.git)
// and git@github.com:o/n(.git).
func ParseGitHubSlug(remoteURL string) (string, bool) {
	u := strings.TrimSpace(remoteURL)
	var rest string
	switch {
	case strings.HasPrefix(u, "git@github.com:"):
		rest = strings.TrimPrefix(u, "git@github.com:")
	default:
		_, after, found := strings.Cut(u, "github.com/")
		if !found || !strings.Contains(u, "://") {
			return "", false
		}
		rest = after
	}

	rest = strings.TrimSuffix(strings.TrimSuffix(rest, "/"), ".git")
	owner, name, ok := strings.Cut(rest, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return owner + "/" + name, true
}
