// Package orchestrator runs the tool-calling conversation loop.
//
// Each user turn appends a user message and calls the model with the full
// history and the tools of the provider. While the model stops for tool use,
// the requested tool is invoked through the ToolConnector, its text result is
// appended as a user message, and the model is called again with a lower
// temperature. The turn ends on the first response without a tool request,
// or when the per-turn tool budget is exhausted.
package orchestrator
