// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/runoshun/pcr-triage/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockFetcher is a test double for domain.IssueFetcher.
// Fields are ordered to minimize memory padding.
type MockFetcher struct {
	Err     error
	Queries []domain.FetchQuery
	Data    []byte
}

// Fetch records the query and returns the configured response.
func (m *MockFetcher) Fetch(_ context.Context, query domain.FetchQuery) ([]byte, error) {
	m.Queries = append(m.Queries, query)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Data, nil
}

// MockArtifactWriter is a test double for domain.ArtifactWriter.
type MockArtifactWriter struct {
	Files   map[string][]byte
	FailOn  map[string]error // Path -> error returned by Write
	Written []string         // Paths in write order
}

// NewMockArtifactWriter creates a new MockArtifactWriter with initialized maps.
func NewMockArtifactWriter() *MockArtifactWriter {
	return &MockArtifactWriter{
		Files:  make(map[string][]byte),
		FailOn: make(map[string]error),
	}
}

// Write stores data in memory unless a failure is configured for path.
func (m *MockArtifactWriter) Write(path string, data []byte) error {
	if err, ok := m.FailOn[path]; ok {
		return err
	}
	m.Files[path] = append([]byte(nil), data...)
	m.Written = append(m.Written, path)
	return nil
}

// MockRepoInspector is a test double for domain.RepoInspector.
type MockRepoInspector struct {
	Info   *domain.RepoInfo
	Err    error
	Called bool
}

// Inspect returns the configured info.
func (m *MockRepoInspector) Inspect(_ string, _ []string) (*domain.RepoInfo, error) {
	m.Called = true
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Info, nil
}

// MockExecutor is a test double for domain.CommandExecutor.
// Fields are ordered to minimize memory padding.
type MockExecutor struct {
	Err      error
	Commands []*domain.ExecCommand
	Stdout   string
	Stderr   string
}

// ExecuteWithContext records cmd and writes the configured output.
func (m *MockExecutor) ExecuteWithContext(_ context.Context, cmd *domain.ExecCommand, stdout, stderr io.Writer) error {
	m.Commands = append(m.Commands, cmd)
	_, _ = io.WriteString(stdout, m.Stdout)
	_, _ = io.WriteString(stderr, m.Stderr)
	return m.Err
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config   *domain.Config
	Err      error
	LastPath string
}

// Load returns the configured config, or defaults when none is set.
func (m *MockConfigLoader) Load(path string) (*domain.Config, error) {
	m.LastPath = path
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Config == nil {
		return domain.NewDefaultConfig(), nil
	}
	return m.Config, nil
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}
