// Package llms provides the model abstraction used by the bridge: the ordered
// conversation history, typed response content blocks, tool declarations and
// call options.
//
// Each subpackage includes a provider-specific implementation of Model.
// The internal directories within these subpackages contain provider-specific
// client and wire format implementations.
//
// The `llms.go` file contains the Model interface and provider types.
//
// The `options.go` file provides various options and functions to configure calls.
package llms
