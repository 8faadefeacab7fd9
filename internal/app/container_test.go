package app

import (
	"bytes"
	"testing"

	"github.com/runoshun/pcr-triage/internal/domain"
	"github.com/runoshun/pcr-triage/internal/infra/ghapi"
	"github.com/runoshun/pcr-triage/internal/infra/ghcli"
	"github.com/runoshun/pcr-triage/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainer_RunTriageUseCase_SelectsBackend(t *testing.T) {
	t.Run("gh", func(t *testing.T) {
		c := New()
		require.NoError(t, c.Configure(domain.NewDefaultConfig(), &bytes.Buffer{}))
		assert.Nil(t, c.Fetcher)

		uc, err := c.RunTriageUseCase()
		require.NoError(t, err)
		assert.NotNil(t, uc)
		assert.IsType(t, &ghcli.Client{}, c.Fetcher)
	})

	t.Run("api with GH_TOKEN", func(t *testing.T) {
		c := New()
		c.Getenv = func(key string) string {
			if key == "GH_TOKEN" {
				return "token"
			}
			return ""
		}
		cfg := domain.NewDefaultConfig()
		cfg.Fetch.Backend = domain.BackendAPI

		require.NoError(t, c.Configure(cfg, &bytes.Buffer{}))
		_, err := c.RunTriageUseCase()
		require.NoError(t, err)
		assert.IsType(t, &ghapi.Client{}, c.Fetcher)
	})

	t.Run("api falls back to GITHUB_TOKEN", func(t *testing.T) {
		c := New()
		c.Getenv = func(key string) string {
			if key == "GITHUB_TOKEN" {
				return "token"
			}
			return ""
		}
		cfg := domain.NewDefaultConfig()
		cfg.Fetch.Backend = domain.BackendAPI

		require.NoError(t, c.Configure(cfg, &bytes.Buffer{}))
		_, err := c.RunTriageUseCase()
		require.NoError(t, err)
		assert.IsType(t, &ghapi.Client{}, c.Fetcher)
	})
}

func TestContainer_APIBackendWithoutToken(t *testing.T) {
	c := New()
	c.Getenv = func(string) string { return "" }
	cfg := domain.NewDefaultConfig()
	cfg.Fetch.Backend = domain.BackendAPI

	// Configuring succeeds; only fetching needs the token.
	require.NoError(t, c.Configure(cfg, &bytes.Buffer{}))
	assert.NotNil(t, c.ShowConfigUseCase())

	uc, err := c.RunTriageUseCase()
	assert.ErrorIs(t, err, domain.ErrMissingToken)
	assert.Nil(t, uc)
	assert.Nil(t, c.Fetcher)
}

func TestContainer_RunTriageUseCase_BeforeConfigure(t *testing.T) {
	_, err := New().RunTriageUseCase()
	assert.ErrorIs(t, err, domain.ErrConfigNil)
}

func TestContainer_KeepsPresetFetcher(t *testing.T) {
	fetcher := &testutil.MockFetcher{}
	c := NewWithDeps(fetcher, nil, testutil.NewMockArtifactWriter(), &testutil.MockConfigLoader{}, &testutil.MockClock{}, testutil.DiscardLogger())

	cfg := domain.NewDefaultConfig()
	cfg.Fetch.Backend = domain.BackendAPI
	require.NoError(t, c.Configure(cfg, &bytes.Buffer{}))
	_, err := c.RunTriageUseCase()
	require.NoError(t, err)
	assert.Same(t, fetcher, c.Fetcher)
}

func TestContainer_Configure_Invalid(t *testing.T) {
	c := New()

	assert.ErrorIs(t, c.Configure(nil, &bytes.Buffer{}), domain.ErrConfigNil)

	cfg := domain.NewDefaultConfig()
	cfg.Log.Level = "verbose"
	assert.ErrorIs(t, c.Configure(cfg, &bytes.Buffer{}), domain.ErrInvalidLogLevel)
}

func TestContainer_Configure_LogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New()
	cfg := domain.NewDefaultConfig()
	cfg.Log.Level = domain.LogLevelDebug

	require.NoError(t, c.Configure(cfg, &buf))
	c.Logger.Debug("resolved repository")

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "resolved repository")
}

func TestContainer_UseCases(t *testing.T) {
	c := New()
	require.NoError(t, c.Configure(domain.NewDefaultConfig(), &bytes.Buffer{}))

	uc, err := c.RunTriageUseCase()
	require.NoError(t, err)
	assert.NotNil(t, uc)
	assert.NotNil(t, c.ShowConfigUseCase())
}
