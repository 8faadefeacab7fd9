// Package ghapi fetches issues through the GitHub REST API.
// Responses are re-encoded in the gh CLI schema so both backends feed the
// same normalizer.
package ghapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v57/github"
	"github.com/runoshun/pcr-triage/internal/domain"
	"golang.org/x/oauth2"
)

// maxPerPage is the REST API page size limit.
const maxPerPage = 100

// Ensure Client implements domain.IssueFetcher.
var _ domain.IssueFetcher = (*Client)(nil)

// Client wraps a go-github client.
type Client struct {
	client *github.Client
	logger *slog.Logger
}

// NewClient creates a client authenticated with token.
func NewClient(token string, logger *slog.Logger) *Client {
	var tc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		tc = oauth2.NewClient(context.Background(), ts)
	}
	return &Client{client: github.NewClient(tc), logger: logger}
}

// NewWithClient wraps an existing go-github client.
func NewWithClient(client *github.Client, logger *slog.Logger) *Client {
	return &Client{client: client, logger: logger}
}

// Fetch lists issues for query.Repo and returns them as a gh-schema JSON array.
func (c *Client) Fetch(ctx context.Context, query domain.FetchQuery) ([]byte, error) {
	owner, name, ok := strings.Cut(query.Repo, "/")
	if !ok || owner == "" || name == "" {
		return nil, fmt.Errorf("%w: api backend needs owner/name, got %q", domain.ErrRemoteNotFound, query.Repo)
	}

	var issues []*github.Issue
	var err error
	if query.Search != "" {
		issues, err = c.search(ctx, query)
	} else {
		issues, err = c.listByRepo(ctx, owner, name, query)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GitHub API request failed: %w", domain.ErrExternalCommand, err)
	}

	raw := make([]domain.RawIssue, 0, len(issues))
	for _, is := range issues {
		raw = append(raw, toRawIssue(is))
	}
	c.logger.Debug("fetched issues from GitHub API", "repo", query.Repo, "count", len(raw))
	return json.Marshal(raw)
}

func (c *Client) listByRepo(ctx context.Context, owner, name string, query domain.FetchQuery) ([]*github.Issue, error) {
	opts := &github.IssueListByRepoOptions{
		State:       "open",
		Labels:      query.Labels,
		ListOptions: github.ListOptions{PerPage: pageSize(query.Limit)},
	}

	var all []*github.Issue
	for {
		page, resp, err := c.client.Issues.ListByRepo(ctx, owner, name, opts)
		if err != nil {
			return nil, fmt.Errorf("list issues: %w", err)
		}
		for _, is := range page {
			// The issues endpoint also returns pull requests.
			if is.IsPullRequest() {
				continue
			}
			all = append(all, is)
			if reachedLimit(all, query.Limit) {
				return all, nil
			}
		}
		if resp.NextPage == 0 {
			return all, nil
		}
		opts.Page = resp.NextPage
	}
}

func (c *Client) search(ctx context.Context, query domain.FetchQuery) ([]*github.Issue, error) {
	q := "repo:" + query.Repo + " " + query.Search
	opts := &github.SearchOptions{
		ListOptions: github.ListOptions{PerPage: pageSize(query.Limit)},
	}

	var all []*github.Issue
	for {
		result, resp, err := c.client.Search.Issues(ctx, q, opts)
		if err != nil {
			return nil, fmt.Errorf("search issues: %w", err)
		}
		for _, is := range result.Issues {
			all = append(all, is)
			if reachedLimit(all, query.Limit) {
				return all, nil
			}
		}
		if resp.NextPage == 0 {
			return all, nil
		}
		opts.Page = resp.NextPage
	}
}

func pageSize(limit int) int {
	if limit <= 0 || limit > maxPerPage {
		return maxPerPage
	}
	return limit
}

func reachedLimit(issues []*github.Issue, limit int) bool {
	return limit > 0 && len(issues) >= limit
}

// toRawIssue maps an API issue onto the gh CLI schema. Absent API fields stay
// nil so the normalizer reports them.
func toRawIssue(is *github.Issue) domain.RawIssue {
	raw := domain.RawIssue{
		Assignees: make([]domain.RawActor, 0, len(is.Assignees)),
		Labels:    make([]domain.RawLabel, 0, len(is.Labels)),
		Title:     is.Title,
		URL:       is.HTMLURL,
		CreatedAt: timestamp(is.CreatedAt),
		UpdatedAt: timestamp(is.UpdatedAt),
	}
	if is.Number != nil {
		n := uint64(is.GetNumber())
		raw.Number = &n
	}
	if is.User != nil {
		raw.Author = &domain.RawActor{
			Login: is.User.Login,
			ID:    is.User.GetNodeID(),
			Name:  is.User.GetName(),
		}
	}
	for _, u := range is.Assignees {
		raw.Assignees = append(raw.Assignees, domain.RawActor{
			Login: u.Login,
			ID:    u.GetNodeID(),
			Name:  u.GetName(),
		})
	}
	for _, l := range is.Labels {
		raw.Labels = append(raw.Labels, domain.RawLabel{
			Name:        l.Name,
			ID:          l.GetNodeID(),
			Description: l.GetDescription(),
			Color:       l.GetColor(),
		})
	}
	return raw
}

func timestamp(ts *github.Timestamp) *string {
	if ts == nil {
		return nil
	}
	s := ts.Time.Format(time.RFC3339Nano)
	return &s
}
