// Package config loads the process configuration of mcpbridge:
// an optional YAML or JSON file, overridden by environment variables.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/mcpbridge/mcp/mcpclient"
	"github.com/effective-security/mcpbridge/pkg/llmfactory"
	"github.com/effective-security/x/configloader"
	"github.com/effective-security/x/values"
	"github.com/effective-security/xlog"
	"github.com/go-playground/validator/v10"
)

// Environment variables
const (
	EnvConfigFile     = "MCPBRIDGE_CONFIG"
	EnvBedrockModel   = "BEDROCK_MODEL_NAME"
	EnvAnthropicModel = "ANTHROPIC_MODEL"
	EnvAWSRegion      = "AWS_REGION"
	EnvMCPEndpoint    = "MCP_SERVER_URL"
	EnvRedisURL       = "MCPBRIDGE_REDIS_URL"
	EnvLogLevel       = "MCPBRIDGE_LOG_LEVEL"
	EnvChatID         = "MCPBRIDGE_CHAT_ID"
)

// Defaults
const (
	DefaultProvider            = llmfactory.TypeBedrock
	DefaultLogLevel            = "INFO"
	DefaultMaxTokens           = 2048
	DefaultFollowUpTemperature = 0.1
	DefaultMaxToolCalls        = 10
	DefaultStorePrefix         = "mcpbridge"
)

var logLevels = map[string]xlog.LogLevel{
	"CRITICAL": xlog.CRITICAL,
	"ERROR":    xlog.ERROR,
	"WARNING":  xlog.WARNING,
	"NOTICE":   xlog.NOTICE,
	"INFO":     xlog.INFO,
	"DEBUG":    xlog.DEBUG,
	"TRACE":    xlog.TRACE,
}

// Config of the mcpbridge CLI
type Config struct {
	// LogLevel is the global log level: ERROR|WARNING|NOTICE|INFO|DEBUG|TRACE
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"oneof=CRITICAL ERROR WARNING NOTICE INFO DEBUG TRACE"`

	Model Model `json:"model" yaml:"model"`
	MCP   MCP   `json:"mcp" yaml:"mcp"`
	Chat  Chat  `json:"chat" yaml:"chat"`
	Store Store `json:"store" yaml:"store"`
}

// Model specifies the model provider
type Model struct {
	// Provider is ANTHROPIC or BEDROCK
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty" validate:"oneof=ANTHROPIC BEDROCK"`
	// Name is the model ID, for Bedrock it may be an inference profile
	Name string `json:"name,omitempty" yaml:"name,omitempty" validate:"required"`
	// Region is the AWS region for Bedrock
	Region string `json:"region,omitempty" yaml:"region,omitempty"`
	// Token is the Anthropic API key, ANTHROPIC_API_KEY is used if empty
	Token      string `json:"token,omitempty" yaml:"token,omitempty"`
	BaseURL    string `json:"base_url,omitempty" yaml:"base_url,omitempty" validate:"omitempty,url"`
	MaxRetries int    `json:"max_retries,omitempty" yaml:"max_retries,omitempty" validate:"gte=0"`
	// Timeout limits each model call, for example "60s"
	Timeout string `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	// ProvidersFile is an optional providers file for the model factory,
	// the model is then selected by Name from its available models.
	ProvidersFile string `json:"providers_file,omitempty" yaml:"providers_file,omitempty"`
}

// MCP specifies the tool provider session
type MCP struct {
	// Endpoint is the SSE endpoint of the tool provider
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" validate:"url"`
	// Required aborts the startup when the tool provider is unreachable,
	// otherwise the conversation continues without tools.
	Required bool `json:"required,omitempty" yaml:"required,omitempty"`
	// CallTimeout limits each tool call, for example "30s"
	CallTimeout string `json:"call_timeout,omitempty" yaml:"call_timeout,omitempty"`
}

// Chat specifies the conversation loop
type Chat struct {
	MaxTokens           int     `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty" validate:"gte=0"`
	MaxToolCalls int `json:"max_tool_calls,omitempty" yaml:"max_tool_calls,omitempty" validate:"gte=0"`
	// Temperature of the first model call of a turn, the provider default if not set
	Temperature *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty" validate:"omitempty,gte=0,lte=1"`
	// FollowUpTemperature of the model calls after a tool result, 0.1 if not set
	FollowUpTemperature *float64 `json:"follow_up_temperature,omitempty" yaml:"follow_up_temperature,omitempty" validate:"omitempty,gte=0,lte=1"`
	SystemPrompt        string   `json:"system_prompt,omitempty" yaml:"system_prompt,omitempty"`
	// Preamble replaces the default preamble of the first message, empty disables it
	Preamble *string `json:"preamble,omitempty" yaml:"preamble,omitempty"`
}

// Store specifies where the conversation history is kept
type Store struct {
	// RedisURL selects the Redis store, in memory if empty
	RedisURL string `json:"redis_url,omitempty" yaml:"redis_url,omitempty" validate:"omitempty,url"`
	Prefix   string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	// TTL expires the Redis history, for example "24h"
	TTL string `json:"ttl,omitempty" yaml:"ttl,omitempty"`
	// ChatID resumes the conversation kept under this ID, a new one is generated if empty
	ChatID string `json:"chat_id,omitempty" yaml:"chat_id,omitempty"`
}

// Load returns the configuration from the optional file,
// with environment overrides and defaults applied, and validated.
func Load(file string) (*Config, error) {
	cfg := new(Config)
	if file != "" {
		err := configloader.UnmarshalAndExpand(file, cfg)
		if err != nil {
			return nil, errors.WithMessagef(err, "failed to load config %q", file)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvBedrockModel); v != "" {
		c.Model.Provider = llmfactory.TypeBedrock
		c.Model.Name = v
	} else if v := os.Getenv(EnvAnthropicModel); v != "" {
		c.Model.Provider = llmfactory.TypeAnthropic
		c.Model.Name = v
	}
	c.Model.Region = values.StringsCoalesce(c.Model.Region, os.Getenv(EnvAWSRegion))
	c.MCP.Endpoint = values.StringsCoalesce(os.Getenv(EnvMCPEndpoint), c.MCP.Endpoint)
	c.Store.RedisURL = values.StringsCoalesce(os.Getenv(EnvRedisURL), c.Store.RedisURL)
	c.LogLevel = values.StringsCoalesce(os.Getenv(EnvLogLevel), c.LogLevel)
	c.Store.ChatID = values.StringsCoalesce(os.Getenv(EnvChatID), c.Store.ChatID)
}

func (c *Config) applyDefaults() {
	c.LogLevel = strings.ToUpper(values.StringsCoalesce(c.LogLevel, DefaultLogLevel))
	c.Model.Provider = strings.ToUpper(values.StringsCoalesce(c.Model.Provider, DefaultProvider))
	c.MCP.Endpoint = values.StringsCoalesce(c.MCP.Endpoint, mcpclient.DefaultEndpoint)
	c.Chat.MaxTokens = values.NumbersCoalesce(c.Chat.MaxTokens, DefaultMaxTokens)
	if c.Chat.FollowUpTemperature == nil {
		t := DefaultFollowUpTemperature
		c.Chat.FollowUpTemperature = &t
	}
	c.Chat.MaxToolCalls = values.NumbersCoalesce(c.Chat.MaxToolCalls, DefaultMaxToolCalls)
	c.Store.Prefix = values.StringsCoalesce(c.Store.Prefix, DefaultStorePrefix)
}

// Validate returns an error if the configuration is invalid
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	for name, d := range map[string]string{
		"model.timeout":    c.Model.Timeout,
		"mcp.call_timeout": c.MCP.CallTimeout,
		"store.ttl":        c.Store.TTL,
	} {
		if _, err := parseDuration(d); err != nil {
			return errors.WithMessagef(err, "invalid configuration: %s", name)
		}
	}
	return nil
}

// GetLogLevel returns the xlog level
func (c *Config) GetLogLevel() xlog.LogLevel {
	if l, ok := logLevels[strings.ToUpper(c.LogLevel)]; ok {
		return l
	}
	return xlog.INFO
}

// ProviderConfig returns the model factory description of the model
func (m *Model) ProviderConfig() *llmfactory.ProviderConfig {
	return &llmfactory.ProviderConfig{
		Name:         strings.ToLower(m.Provider),
		Type:         m.Provider,
		Token:        m.Token,
		DefaultModel: m.Name,
		BaseURL:      m.BaseURL,
		Region:       m.Region,
		MaxRetries:   m.MaxRetries,
		Timeout:      m.Timeout,
	}
}

// GetTimeout returns the model call timeout, zero if not set
func (m *Model) GetTimeout() time.Duration {
	d, _ := parseDuration(m.Timeout)
	return d
}

// GetCallTimeout returns the tool call timeout, zero if not set
func (m *MCP) GetCallTimeout() time.Duration {
	d, _ := parseDuration(m.CallTimeout)
	return d
}

// GetTTL returns the history TTL, zero if not set
func (s *Store) GetTTL() time.Duration {
	d, _ := parseDuration(s.TTL)
	return d
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	if d < 0 {
		return 0, errors.Newf("negative duration %q", s)
	}
	return d, nil
}
