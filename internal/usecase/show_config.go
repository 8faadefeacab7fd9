package usecase

import (
	"context"
	"errors"
	"os"

	"github.com/runoshun/pcr-triage/internal/domain"
)

// ShowConfigInput contains the input for the ShowConfig use case.
type ShowConfigInput struct {
	Config *domain.Config // Effective configuration after flag overrides
	Path   string         // Configuration file that was consulted
}

// ShowConfigOutput contains the output of the ShowConfig use case.
type ShowConfigOutput struct {
	EffectiveConfig *domain.Config
	Path            string
	Exists          bool // Whether Path exists; defaults were used otherwise
}

// ShowConfig reports the configuration a triage run would use.
type ShowConfig struct{}

// NewShowConfig creates a new ShowConfig use case.
func NewShowConfig() *ShowConfig {
	return &ShowConfig{}
}

// Execute validates the configuration and reports where it came from.
func (uc *ShowConfig) Execute(_ context.Context, in ShowConfigInput) (*ShowConfigOutput, error) {
	if in.Config == nil {
		return nil, domain.ErrConfigNil
	}
	if err := in.Config.Validate(); err != nil {
		return nil, err
	}

	exists := false
	if in.Path != "" {
		_, err := os.Stat(in.Path)
		exists = err == nil || !errors.Is(err, os.ErrNotExist)
	}

	return &ShowConfigOutput{
		EffectiveConfig: in.Config,
		Path:            in.Path,
		Exists:          exists,
	}, nil
}
