// Package driving provides interfaces for primary/inbound ports.
//
// These are the use-case contracts exposed to the stdio command server,
// the CLI and the MCP adapter.
package driving
