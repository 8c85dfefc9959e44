// Package llmfactory creates llms.Model instances for the configured providers
// (Anthropic direct or Anthropic on AWS Bedrock) and caches them by type and model name.
package llmfactory
