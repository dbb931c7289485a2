package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// parseEnv overlays values from environment variables. A variable that is
// set but cannot be parsed panics, mirroring the JSON and flag stages.
//
//	ARABICA_HTTP_ADDR, ARABICA_GRPC_ADDR, ARABICA_STORE, ARABICA_MONGO_URI,
//	ARABICA_MONGO_DB, ARABICA_DATABASE_DSN, JWT_SECRET, JWT_ISSUER,
//	JWT_EXPIRES_IN, ARABICA_BCRYPT_COST, ARABICA_LOGIN_FAILURE_DELAY,
//	ARABICA_STORE_TIMEOUT, ARABICA_SHUTDOWN_TIMEOUT,
//	ARABICA_UNIFORM_LOGIN_ERRORS, ARABICA_LOG_LEVEL
func parseEnv(config *Config) {
	envString(&config.HTTPAddr, "ARABICA_HTTP_ADDR")
	envString(&config.GRPCAddr, "ARABICA_GRPC_ADDR")
	envString(&config.StoreDriver, "ARABICA_STORE")
	envString(&config.MongoURI, "ARABICA_MONGO_URI")
	envString(&config.MongoDatabase, "ARABICA_MONGO_DB")
	envString(&config.DatabaseDSN, "ARABICA_DATABASE_DSN")
	envString(&config.SecretKey, "JWT_SECRET")
	envString(&config.TokenIssuer, "JWT_ISSUER")
	envString(&config.LogLevel, "ARABICA_LOG_LEVEL")

	envDuration(&config.TokenValidityDuration, "JWT_EXPIRES_IN")
	envDuration(&config.LoginFailureDelay, "ARABICA_LOGIN_FAILURE_DELAY")
	envDuration(&config.StoreTimeout, "ARABICA_STORE_TIMEOUT")
	envDuration(&config.ShutdownTimeout, "ARABICA_SHUTDOWN_TIMEOUT")

	if v, ok := os.LookupEnv("ARABICA_BCRYPT_COST"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(fmt.Errorf("ARABICA_BCRYPT_COST: %w", err))
		}
		config.BcryptCost = n
	}
	if v, ok := os.LookupEnv("ARABICA_UNIFORM_LOGIN_ERRORS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(fmt.Errorf("ARABICA_UNIFORM_LOGIN_ERRORS: %w", err))
		}
		config.UniformLoginErrors = b
	}
}

func envString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func envDuration(dst *time.Duration, key string) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(fmt.Errorf("%s: %w", key, err))
	}
	*dst = d
}
