// Package tools describes the tools offered by a tool provider and adapts them
// to the tool declarations sent to the model.
package tools
