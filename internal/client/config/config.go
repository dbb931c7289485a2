package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the arabica CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - RequestTimeout: upper bound for a single call to the server.
//   - Token: session token sent with check, logout and sessions.
type Config struct {
	ServerEndpointAddr string
	RequestTimeout     time.Duration
	Token              string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 5 * time.Second
	c.Token = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg, os.Args[1:])
	return cfg
}

func parseEnv(cfg *Config) {
	if v, ok := os.LookupEnv("ARABICA_SERVER_ADDR"); ok && v != "" {
		cfg.ServerEndpointAddr = v
	}
	if v, ok := os.LookupEnv("ARABICA_TOKEN"); ok && v != "" {
		cfg.Token = v
	}
}
