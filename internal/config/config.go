// Package config loads process configuration from the environment.
package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds every knob of the server process.
type Config struct {
	// HTTP listen address.
	Addr string `envconfig:"ADDR" default:":8080"`

	// When set, save blobs go to Redis; otherwise to files under DataDir.
	RedisAddr string `envconfig:"REDIS_ADDR" default:""`
	DataDir   string `envconfig:"DATA_DIR" default:"data"`

	// Optional YAML catalog override file. Empty means the built-in
	// catalog; a path to a missing file also falls back to it.
	CatalogPath string `envconfig:"CATALOG_PATH" default:""`

	// Fresh-profile balance.
	StartingCoins int `envconfig:"STARTING_COINS" default:"2000"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
