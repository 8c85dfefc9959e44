package llmfactory

import (
	"slices"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/x/configloader"
)

// Provider types
const (
	TypeAnthropic = "ANTHROPIC"
	TypeBedrock   = "BEDROCK"
)

type Config struct {
	// Providers specifies the list of providers to use
	Providers []*ProviderConfig `json:"providers" yaml:"providers"`
	// DefaultProvider specifies the default provider to use
	DefaultProvider string `json:"default_provider" yaml:"default_provider"`
}

// ProviderConfig describes one model provider
type ProviderConfig struct {
	Name string `json:"name" yaml:"name"`
	// Type specifies the type of API to use: ANTHROPIC|BEDROCK
	Type            string   `json:"type" yaml:"type"`
	Token           string   `json:"token,omitempty" yaml:"token,omitempty"`
	DefaultModel    string   `json:"default_model,omitempty" yaml:"default_model,omitempty"`
	AvailableModels []string `json:"available_models,omitempty" yaml:"available_models,omitempty"`
	// BaseURL overrides the Anthropic API endpoint
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	// Region is the AWS region for Bedrock
	Region     string `json:"region,omitempty" yaml:"region,omitempty"`
	MaxRetries int    `json:"max_retries,omitempty" yaml:"max_retries,omitempty"`
	// Timeout is a duration string, for example "30s"
	Timeout string `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

func (c *ProviderConfig) FindModel(models ...string) string {
	for _, model := range models {
		if slices.Contains(c.AvailableModels, model) {
			return model
		}
	}
	return c.DefaultModel
}

// GetTimeout returns the parsed request timeout, zero if not set.
func (c *ProviderConfig) GetTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid timeout for provider %q", c.Name)
	}
	return d, nil
}

// LoadConfig from file
func LoadConfig(file string) (*Config, error) {
	cfg := new(Config)
	if file == "" {
		return cfg, nil
	}

	err := configloader.UnmarshalAndExpand(file, cfg)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
