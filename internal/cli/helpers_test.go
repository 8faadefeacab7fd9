package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/runoshun/pcr-triage/internal/app"
	"github.com/runoshun/pcr-triage/internal/domain"
	"github.com/runoshun/pcr-triage/internal/testutil"
)

const cliIssues = `[
  {
    "assignees": [],
    "author": {"login": "alice"},
    "createdAt": "2024-05-01T12:00:00Z",
    "labels": [{"name": "T-compiler"}, {"name": "P-high"}],
    "number": 42,
    "title": "Crash",
    "updatedAt": "2024-05-02T12:00:00Z",
    "url": "https://github.com/rust-lang/rust/issues/42"
  }
]`

// cliFixture bundles a container built from test doubles.
type cliFixture struct {
	container *app.Container
	fetcher   *testutil.MockFetcher
	inspector *testutil.MockRepoInspector
	writer    *testutil.MockArtifactWriter
	loader    *testutil.MockConfigLoader
}

func newCLIFixture(t *testing.T) *cliFixture {
	t.Helper()
	f := &cliFixture{
		fetcher: &testutil.MockFetcher{Data: []byte(cliIssues)},
		inspector: &testutil.MockRepoInspector{
			Info: &domain.RepoInfo{Slug: "rust-lang/rust", Remote: "upstream"},
		},
		writer: testutil.NewMockArtifactWriter(),
		loader: &testutil.MockConfigLoader{},
	}
	clock := &testutil.MockClock{NowTime: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
	f.container = app.NewWithDeps(f.fetcher, f.inspector, f.writer, f.loader, clock, testutil.DiscardLogger())
	return f
}

// run executes the root command with args and returns stdout and stderr.
func (f *cliFixture) run(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	root := NewRootCommand(f.container, "test")
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
