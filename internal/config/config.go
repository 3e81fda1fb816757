// Package config provides functionality for managing configuration options
// for the application using command-line flags, an optional JSON config file
// and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Options holds the configuration values for the application.
type Options struct {
	// Address defines the server's listening address (ip:port).
	Address string `env:"SERVER_ADDRESS" json:"address"`

	// DatabaseDSN holds the PostgreSQL connection string.
	DatabaseDSN string `env:"DATABASE_DSN" json:"database_dsn"`

	// JWTSecret is the HMAC secret used to sign bearer tokens.
	// Must be at least 32 bytes.
	JWTSecret string `env:"JWT_SECRET" json:"jwt_secret"`

	// TokenTTL is the lifetime of issued bearer tokens.
	TokenTTL time.Duration `env:"TOKEN_TTL" json:"token_ttl"`

	// Config is the path to the JSON config file.
	Config string `env:"CONFIG" json:"-"`
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Address, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.JWTSecret, "s", "", "jwt signing secret")
	flag.DurationVar(&options.TokenTTL, "t", 24*time.Hour, "bearer token lifetime")
	flag.StringVar(&options.Config, "config", "", "path to config file")
	flag.StringVar(&options.Config, "c", "", "path to config file (shorthand)")
}

// Parse builds the configuration in precedence order: flag values,
// then values from the JSON config file if one exists, then
// environment variable overrides. It returns a pointer to the Options
// struct containing the final values.
func Parse() *Options {
	flag.Parse()

	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	// Environment variables win over flags and the config file.
	if err := env.Parse(options); err != nil {
		log.Fatalf("error while parsing environment: %v", err)
	}

	return options
}
