package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/arabica/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g. ":3000")
//	-g string   gRPC bind address (e.g. ":50051")
//	-b string   store driver: memory, mongo, postgres
//	-m string   MongoDB URI
//	-n string   MongoDB database name
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-i string   JWT issuer
//	-t int      token validity, minutes
//	-k int      bcrypt cost
//	-w int      login failure delay, milliseconds
//	-o int      store call timeout, milliseconds
//	-u          report login failures uniformly
//	-l string   log level
//
// Duration flags are integers in the stated unit and are converted to
// time.Duration values. They are applied only when passed, so values from
// JSON or the environment keep their full precision otherwise.
func parseFlags(config *Config) {
	args := flagx.FilterArgsWithBools(os.Args[1:],
		[]string{"-a", "-g", "-b", "-m", "-n", "-d", "-s", "-i", "-t", "-k", "-w", "-o", "-l"},
		[]string{"-u"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address and port")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "gRPC address and port")
	fs.StringVar(&config.StoreDriver, "b", config.StoreDriver, "store driver (memory, mongo, postgres)")
	fs.StringVar(&config.MongoURI, "m", config.MongoURI, "MongoDB URI")
	fs.StringVar(&config.MongoDatabase, "n", config.MongoDatabase, "MongoDB database")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.TokenIssuer, "i", config.TokenIssuer, "token issuer")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token validity (in minutes)")
	fs.IntVar(&config.BcryptCost, "k", config.BcryptCost, "bcrypt cost")
	loginDelay := fs.Int64("w", config.LoginFailureDelay.Milliseconds(), "login failure delay (in milliseconds)")
	storeTimeout := fs.Int64("o", config.StoreTimeout.Milliseconds(), "store call timeout (in milliseconds)")

	fs.BoolVar(&config.UniformLoginErrors, "u", config.UniformLoginErrors, "report login failures uniformly")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
		case "w":
			config.LoginFailureDelay = time.Duration(*loginDelay) * time.Millisecond
		case "o":
			config.StoreTimeout = time.Duration(*storeTimeout) * time.Millisecond
		}
	})
}
