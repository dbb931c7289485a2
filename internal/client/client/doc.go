// Package client talks to the arabica gRPC endpoint on behalf of the CLI.
// It attaches the session token to protected calls and turns gRPC statuses
// into the errors the CLI reports.
package client
