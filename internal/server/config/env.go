package config

import "github.com/kelseyhightower/envconfig"

// parseEnv overlays AUTHKEEPER_* environment variables. Variables that are
// not set leave the current value untouched.
func parseEnv(config *Config) error {
	return envconfig.Process(EnvPrefix, config)
}
