package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/arabica/internal/flagx"
	"github.com/dmitrijs2005/arabica/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so both "2s" strings and integer nanoseconds are accepted.
// Absent fields leave the current value untouched.
type JsonConfig struct {
	HTTPAddr              string          `json:"http_addr"`
	GRPCAddr              string          `json:"grpc_addr"`
	StoreDriver           string          `json:"store_driver"`
	MongoURI              string          `json:"mongo_uri"`
	MongoDatabase         string          `json:"mongo_database"`
	DatabaseDSN           string          `json:"database_dsn"`
	SecretKey             string          `json:"secret_key"`
	TokenIssuer           string          `json:"token_issuer"`
	TokenValidityDuration timex.Duration  `json:"token_validity_duration"`
	BcryptCost            int             `json:"bcrypt_cost"`
	LoginFailureDelay     *timex.Duration `json:"login_failure_delay"`
	StoreTimeout          timex.Duration  `json:"store_timeout"`
	ShutdownTimeout       timex.Duration  `json:"shutdown_timeout"`
	UniformLoginErrors    *bool           `json:"uniform_login_errors"`
	LogLevel              string          `json:"log_level"`
}

// parseJson loads configuration values from the JSON file named by the
// -c / -config flags into config. Without those flags nothing happens.
// An unreadable file or invalid JSON panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.GRPCAddr, c.GRPCAddr)
	setString(&config.StoreDriver, c.StoreDriver)
	setString(&config.MongoURI, c.MongoURI)
	setString(&config.MongoDatabase, c.MongoDatabase)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.TokenIssuer, c.TokenIssuer)
	setString(&config.LogLevel, c.LogLevel)

	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	// zero is a meaningful delay, hence the pointer
	if c.LoginFailureDelay != nil {
		config.LoginFailureDelay = c.LoginFailureDelay.Duration
	}
	if c.StoreTimeout.Duration != 0 {
		config.StoreTimeout = c.StoreTimeout.Duration
	}
	if c.ShutdownTimeout.Duration != 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.UniformLoginErrors != nil {
		config.UniformLoginErrors = *c.UniformLoginErrors
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
