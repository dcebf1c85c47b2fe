// Package config provides functionality for managing configuration options
// for the application using command-line flags, environment variables and
// an optional JSON config file.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string `json:"port"`

	// DatabaseDSN holds the database connection string for the application.
	DatabaseDSN string `json:"database_dsn"`

	// Config is the path to the config file.
	Config string `json:"-"`

	// ImageEndpoint is the base URL of the S3-compatible image host.
	ImageEndpoint string `json:"image_endpoint"`
	// ImageRegion is the region the image host expects to be addressed with.
	ImageRegion string `json:"image_region"`
	// ImageBucket is the bucket (account namespace) offer images live in.
	ImageBucket string `json:"image_bucket"`
	// ImageAccessKey and ImageSecretKey are the image host credentials.
	ImageAccessKey string `json:"image_access_key"`
	ImageSecretKey string `json:"image_secret_key"`
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags, an optional .env file, the config
// file and environment variables to set configuration values. Environment
// variables win over the config file, which wins over flags. It returns a
// pointer to the Options struct containing the parsed values.
func Parse() *Options {
	// Load a .env file if one is present; real env vars are not overridden.
	_ = godotenv.Load()

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

	applyEnv(options)

	return options
}

// applyEnv overrides option values from environment variables.
func applyEnv(o *Options) {
	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		o.Port = serverAddress
	}
	if dsn := os.Getenv("DATABASE_URI"); dsn != "" {
		o.DatabaseDSN = dsn
	}
	if v := os.Getenv("IMAGE_STORE_ENDPOINT"); v != "" {
		o.ImageEndpoint = v
	}
	if v := os.Getenv("IMAGE_STORE_REGION"); v != "" {
		o.ImageRegion = v
	}
	if v := os.Getenv("IMAGE_STORE_BUCKET"); v != "" {
		o.ImageBucket = v
	}
	if v := os.Getenv("IMAGE_STORE_ACCESS_KEY"); v != "" {
		o.ImageAccessKey = v
	}
	if v := os.Getenv("IMAGE_STORE_SECRET_KEY"); v != "" {
		o.ImageSecretKey = v
	}
}
