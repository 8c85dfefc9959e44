package bedrock

import (
	"github.com/effective-security/mcpbridge/pkg/llms/bedrock/internal/bedrockclient"
)

// Option is an option for the Bedrock LLM.
type Option func(*options)

type options struct {
	modelID string
	region  string
	client  bedrockclient.InvokeModelAPI
}

// WithModel allows setting a custom modelId.
//
// Only Anthropic models are supported, for example
// "anthropic.claude-3-5-sonnet-20240620-v1:0" or the
// inference profile "us.anthropic.claude-3-5-sonnet-20241022-v2:0".
func WithModel(modelID string) Option {
	return func(o *options) {
		o.modelID = modelID
	}
}

// WithRegion sets the AWS region used when the default configuration is loaded.
func WithRegion(region string) Option {
	return func(o *options) {
		o.region = region
	}
}

// WithClient allows setting a custom bedrockruntime.Client.
//
// You may use this to pass a custom bedrockruntime.Client
// with custom configuration options
// such as setting custom credentials, region, endpoint, etc.
//
// By default, a new client will be created using the default credentials chain.
func WithClient(client bedrockclient.InvokeModelAPI) Option {
	return func(o *options) {
		o.client = client
	}
}
