// Package config loads runtime configuration for the arabica CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment: ARABICA_SERVER_ADDR, ARABICA_TOKEN.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string      address:port of the backend gRPC endpoint
//	-r int         per-request timeout (seconds)
//	-token string  session token for protected commands
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "request_timeout": "5s"
//	}
//
// The token is never read from the JSON file.
package config
