// Package app provides the dependency injection container for the application.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/runoshun/pcr-triage/internal/domain"
	"github.com/runoshun/pcr-triage/internal/infra/artifact"
	"github.com/runoshun/pcr-triage/internal/infra/config"
	"github.com/runoshun/pcr-triage/internal/infra/executor"
	"github.com/runoshun/pcr-triage/internal/infra/ghapi"
	"github.com/runoshun/pcr-triage/internal/infra/ghcli"
	"github.com/runoshun/pcr-triage/internal/infra/gitrepo"
	"github.com/runoshun/pcr-triage/internal/infra/logging"
	"github.com/runoshun/pcr-triage/internal/usecase"
)

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Fetcher      domain.IssueFetcher // Built on first RunTriageUseCase call unless preset
	Inspector    domain.RepoInspector
	Writer       domain.ArtifactWriter
	Executor     domain.CommandExecutor
	Clock        domain.Clock
	ConfigLoader domain.ConfigLoader

	// Pointer fields
	Logger *slog.Logger
	Config *domain.Config // Effective configuration, set by Configure

	ConfigPath string // File the configuration was loaded from

	// Getenv reads environment variables (GH_TOKEN, GITHUB_TOKEN).
	Getenv func(string) string
}

// New creates a Container wired to the real filesystem, git and GitHub.
func New() *Container {
	return &Container{
		Inspector:    gitrepo.NewInspector(),
		Writer:       artifact.NewWriter(""),
		Executor:     executor.NewClient(),
		Clock:        domain.RealClock{},
		ConfigLoader: config.NewLoader(),
		Logger:       logging.New(os.Stderr, slog.LevelInfo),
		Getenv:       os.Getenv,
	}
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(
	fetcher domain.IssueFetcher,
	inspector domain.RepoInspector,
	writer domain.ArtifactWriter,
	loader domain.ConfigLoader,
	clock domain.Clock,
	logger *slog.Logger,
) *Container {
	return &Container{
		Fetcher:      fetcher,
		Inspector:    inspector,
		Writer:       writer,
		ConfigLoader: loader,
		Clock:        clock,
		Logger:       logger,
		Getenv:       func(string) string { return "" },
	}
}

// Configure validates cfg and rebuilds the logger at the configured level
// writing to logOut. The fetcher is left to RunTriageUseCase so commands that
// never fetch do not need backend credentials.
func (c *Container) Configure(cfg *domain.Config, logOut io.Writer) error {
	if cfg == nil {
		return domain.ErrConfigNil
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	c.Logger = logging.New(logOut, level)
	c.Config = cfg
	return nil
}

// issueFetcher returns the preset fetcher or builds one for the configured backend.
func (c *Container) issueFetcher() (domain.IssueFetcher, error) {
	if c.Fetcher != nil {
		return c.Fetcher, nil
	}
	if c.Config == nil {
		return nil, domain.ErrConfigNil
	}
	fetcher, err := c.newFetcher(c.Config)
	if err != nil {
		return nil, err
	}
	c.Fetcher = fetcher
	return fetcher, nil
}

func (c *Container) newFetcher(cfg *domain.Config) (domain.IssueFetcher, error) {
	switch cfg.Fetch.Backend {
	case domain.BackendAPI:
		token := c.Getenv("GH_TOKEN")
		if token == "" {
			token = c.Getenv("GITHUB_TOKEN")
		}
		if token == "" {
			return nil, domain.ErrMissingToken
		}
		return ghapi.NewClient(token, c.Logger), nil
	case domain.BackendGH:
		return ghcli.NewClient(c.Executor, c.Logger, cfg.Fetch.GHPath, cfg.RepoPath), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidBackend, cfg.Fetch.Backend)
	}
}

// UseCase factory methods

// RunTriageUseCase returns a new RunTriage use case, building the issue
// fetcher on first use.
func (c *Container) RunTriageUseCase() (*usecase.RunTriage, error) {
	fetcher, err := c.issueFetcher()
	if err != nil {
		return nil, err
	}
	return usecase.NewRunTriage(fetcher, c.Inspector, c.Writer, c.Clock, c.Logger), nil
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig()
}
