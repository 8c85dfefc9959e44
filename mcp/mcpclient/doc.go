// Package mcpclient manages the session with a remote MCP tool provider
// over the SSE transport: connect, list tools, call tools and close.
package mcpclient
