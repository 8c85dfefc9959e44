package llms

import (
	"context"
)

// ProviderType is the type of provider.
type ProviderType string

const (
	// ProviderAnthropic is the Anthropic Messages API.
	ProviderAnthropic ProviderType = "ANTHROPIC"
	// ProviderBedrock is the Anthropic Messages API hosted on AWS Bedrock.
	ProviderBedrock ProviderType = "BEDROCK"
)

// Model is an interface tool-calling chat models implement.
type Model interface {
	// GetName returns the model identifier used for calls.
	GetName() string
	// GetProviderType returns the type of provider.
	GetProviderType() ProviderType
	// GenerateContent asks the model to generate content from the ordered
	// conversation history. The full history is sent on every call.
	GenerateContent(ctx context.Context, messages []Message, options ...CallOption) (*ContentResponse, error)
}

// Capability is a bitmask indicating supported features of an LLM provider.
type Capability uint64

const (
	// CapabilityText is basic text or chat generation
	CapabilityText Capability = 1 << iota
	// CapabilityFunctionCalling is function/tool calling
	CapabilityFunctionCalling
	// CapabilityTemperature is support for the sampling temperature
	CapabilityTemperature
	// CapabilitySystemPrompt is system prompt support
	CapabilitySystemPrompt
)

var providerCapabilities = map[ProviderType]Capability{
	ProviderAnthropic: CapabilityText |
		CapabilityFunctionCalling |
		CapabilityTemperature |
		CapabilitySystemPrompt,

	ProviderBedrock: CapabilityText |
		CapabilityFunctionCalling |
		CapabilityTemperature |
		CapabilitySystemPrompt,
}

// ProviderCapabilities returns the capabilities of the provider type.
func ProviderCapabilities(pt ProviderType) Capability {
	return providerCapabilities[pt]
}

// Supports returns true if the provider supports the capability.
func (p ProviderType) Supports(cap Capability) bool {
	return ProviderCapabilities(p)&cap != 0
}
