package orchestrator

import (
	"time"

	"github.com/effective-security/mcpbridge/store"
)

// Defaults
const (
	DefaultMaxTokens           = 2048
	DefaultFollowUpTemperature = 0.1
	DefaultMaxToolCalls        = 10
	DefaultPreamble            = "You are a helpful assistant, you have the ability to call tools to achieve user requests."
	DefaultToolResultPrefix    = "Tool result: "
	DefaultPrompt              = "Input: "
)

// Option is a function that can be used to modify the behavior of the Orchestrator Config.
type Option func(*Config)

type Config struct {
	// MaxTokens is the maximum number of tokens to generate per model call.
	MaxTokens int
	// Temperature is the temperature of the first model call of a turn,
	// nil leaves the provider default.
	Temperature *float64
	// FollowUpTemperature is the temperature of the model calls after a tool result,
	// nil leaves the provider default.
	FollowUpTemperature *float64
	// MaxToolCalls is the tool budget of a single user turn.
	MaxToolCalls int

	// Preamble is prepended to the first user message of a conversation,
	// empty means the message is sent verbatim.
	Preamble string
	// SystemPrompt is sent as the system prompt of every model call.
	SystemPrompt string
	// ToolResultPrefix prefixes the tool result folded into the conversation.
	ToolResultPrefix string
	// Prompt is printed by Run before reading the user input.
	Prompt string

	// ModelTimeout limits each model call, zero means no limit.
	ModelTimeout time.Duration

	// CallbackHandler is the callback handler for the loop
	CallbackHandler Callback
	// Store keeps the message history, in memory by default.
	Store store.MessageStore
	// ChatID identifies the conversation in the Store, generated if empty.
	ChatID string
}

// NewConfig returns Config with the defaults and the options applied
func NewConfig(opts ...Option) *Config {
	followUp := DefaultFollowUpTemperature
	cfg := &Config{
		MaxTokens:           DefaultMaxTokens,
		FollowUpTemperature: &followUp,
		MaxToolCalls:        DefaultMaxToolCalls,
		Preamble:            DefaultPreamble,
		ToolResultPrefix:    DefaultToolResultPrefix,
		Prompt:              DefaultPrompt,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithMaxTokens sets the maximum number of tokens per model call.
func WithMaxTokens(maxTokens int) Option {
	return func(o *Config) {
		o.MaxTokens = maxTokens
	}
}

// WithTemperature sets the temperature of the first model call of a turn.
func WithTemperature(temperature float64) Option {
	return func(o *Config) {
		o.Temperature = &temperature
	}
}

// WithFollowUpTemperature sets the temperature of the model calls after a tool result.
func WithFollowUpTemperature(temperature float64) Option {
	return func(o *Config) {
		o.FollowUpTemperature = &temperature
	}
}

// WithMaxToolCalls sets the tool budget per user turn.
func WithMaxToolCalls(limit int) Option {
	return func(o *Config) {
		o.MaxToolCalls = limit
	}
}

// WithPreamble sets the preamble of the first user message.
func WithPreamble(preamble string) Option {
	return func(o *Config) {
		o.Preamble = preamble
	}
}

// WithSystemPrompt sets the system prompt.
func WithSystemPrompt(prompt string) Option {
	return func(o *Config) {
		o.SystemPrompt = prompt
	}
}

// WithToolResultPrefix sets the prefix of the tool result message.
func WithToolResultPrefix(prefix string) Option {
	return func(o *Config) {
		o.ToolResultPrefix = prefix
	}
}

// WithPrompt sets the input prompt printed by Run.
func WithPrompt(prompt string) Option {
	return func(o *Config) {
		o.Prompt = prompt
	}
}

// WithModelTimeout limits the duration of each model call.
func WithModelTimeout(timeout time.Duration) Option {
	return func(o *Config) {
		o.ModelTimeout = timeout
	}
}

// WithCallback allows setting a custom Callback Handler.
func WithCallback(callbackHandler Callback) Option {
	return func(o *Config) {
		o.CallbackHandler = callbackHandler
	}
}

// WithStore sets the message store.
func WithStore(store store.MessageStore) Option {
	return func(o *Config) {
		o.Store = store
	}
}

// WithChatID sets the conversation ID.
func WithChatID(chatID string) Option {
	return func(o *Config) {
		o.ChatID = chatID
	}
}
