// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/pcr-triage/internal/domain"
	"gopkg.in/yaml.v3"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML or YAML files.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load returns the configuration at path merged over the defaults.
// The format is chosen by extension: .yaml/.yml use YAML, anything else TOML.
// A missing file yields the defaults.
func (l *Loader) Load(path string) (*domain.Config, error) {
	base := domain.NewDefaultConfig()
	if path == "" {
		return base, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return base, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	raw, err := decode(path, data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	override, err := convertRawToDomainConfig(raw)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return mergeConfigs(base, override), nil
}

func decode(path string, data []byte) (map[string]any, error) {
	var raw map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

// convertRawToDomainConfig converts the raw map to a partial config and collects warnings.
// Zero values in the result mean "not set".
func convertRawToDomainConfig(raw map[string]any) (*domain.Config, error) {
	res := &domain.Config{}
	var warnings []string

	for section, value := range raw {
		switch section {
		case "repo_path":
			s, ok := value.(string)
			if !ok {
				return nil, typeError(section, "a string", value)
			}
			res.RepoPath = s
		case "log":
			m, ok := value.(map[string]any)
			if !ok {
				return nil, typeError(section, "a table", value)
			}
			for k, v := range m {
				switch k {
				case "level":
					s, ok := v.(string)
					if !ok {
						return nil, typeError("log.level", "a string", v)
					}
					res.Log.Level = s
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
				}
			}
		case "fetch":
			m, ok := value.(map[string]any)
			if !ok {
				return nil, typeError(section, "a table", value)
			}
			w, err := parseFetchSection(m, &res.Fetch)
			if err != nil {
				return nil, err
			}
			warnings = append(warnings, w...)
		default:
			kind, known := triageKindForSection(section)
			if !known {
				warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
				continue
			}
			m, ok := value.(map[string]any)
			if !ok {
				return nil, typeError(section, "a table", value)
			}
			w, err := parseTriageSection(section, m, res.TriageRef(kind))
			if err != nil {
				return nil, err
			}
			warnings = append(warnings, w...)
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res, nil
}

func triageKindForSection(section string) (domain.TriageKind, bool) {
	for _, k := range domain.AllTriageKinds() {
		if k.ConfigKey() == section {
			return k, true
		}
	}
	return "", false
}

func parseFetchSection(m map[string]any, fc *domain.FetchConfig) ([]string, error) {
	var warnings []string
	for k, v := range m {
		switch k {
		case "backend", "gh_path":
			s, ok := v.(string)
			if !ok {
				return nil, typeError("fetch."+k, "a string", v)
			}
			if k == "backend" {
				fc.Backend = s
			} else {
				fc.GHPath = s
			}
		case "remotes":
			list, ok := v.([]any)
			if !ok {
				return nil, typeError("fetch.remotes", "an array of strings", v)
			}
			fc.Remotes = make([]string, 0, len(list))
			for _, item := range list {
				s, ok := item.(string)
				if !ok {
					return nil, typeError("fetch.remotes", "an array of strings", v)
				}
				fc.Remotes = append(fc.Remotes, s)
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown key in [fetch]: %s", k))
		}
	}
	return warnings, nil
}

func parseTriageSection(section string, m map[string]any, tc *domain.TriageConfig) ([]string, error) {
	var warnings []string
	for k, v := range m {
		key := section + "." + k
		switch k {
		case "persist_path", "markdown_stub_path", "markdown_stub_title", "team_label":
			s, ok := v.(string)
			if !ok {
				return nil, typeError(key, "a string", v)
			}
			switch k {
			case "persist_path":
				tc.PersistPath = s
			case "markdown_stub_path":
				tc.MarkdownStubPath = s
			case "markdown_stub_title":
				tc.MarkdownStubTitle = s
			default:
				tc.TeamLabel = s
			}
		case "limit":
			n, ok := toInt(v)
			if !ok || n <= 0 {
				return nil, typeError(key, "a positive integer", v)
			}
			tc.Limit = n
		default:
			warnings = append(warnings, fmt.Sprintf("unknown key in [%s]: %s", section, k))
		}
	}
	return warnings, nil
}

// toInt accepts the integer types produced by the TOML and YAML decoders.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	default:
		return 0, false
	}
}

func typeError(key, want string, got any) error {
	return fmt.Errorf("%s must be %s, got %T", key, want, got)
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := *base
	result.Warnings = append(append([]string{}, base.Warnings...), override.Warnings...)

	if override.RepoPath != "" {
		result.RepoPath = override.RepoPath
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	if override.Fetch.Backend != "" {
		result.Fetch.Backend = override.Fetch.Backend
	}
	if override.Fetch.GHPath != "" {
		result.Fetch.GHPath = override.Fetch.GHPath
	}
	if override.Fetch.Remotes != nil {
		result.Fetch.Remotes = override.Fetch.Remotes
	}

	for _, kind := range domain.AllTriageKinds() {
		mergeTriage(result.TriageRef(kind), override.Triage(kind))
	}
	return &result
}

func mergeTriage(base *domain.TriageConfig, override domain.TriageConfig) {
	if override.PersistPath != "" {
		base.PersistPath = override.PersistPath
	}
	if override.MarkdownStubPath != "" {
		base.MarkdownStubPath = override.MarkdownStubPath
	}
	if override.MarkdownStubTitle != "" {
		base.MarkdownStubTitle = override.MarkdownStubTitle
	}
	if override.TeamLabel != "" {
		base.TeamLabel = override.TeamLabel
	}
	if override.Limit != 0 {
		base.Limit = override.Limit
	}
}
