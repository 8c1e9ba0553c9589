// Package config handles configuration management for droidgen.
// It supports loading configuration from multiple sources including
// an embedded TOML defaults file, a user TOML file, environment variables,
// and command-line flags.
package config
