// Package config loads, validates, and normalizes retain's TOML
// configuration.
//
// Defaults live in defaults.go and apply when the config file is absent.
// Load resolves the file location (flag, RETAIN_CONFIG env var, then
// ~/.config/retain/config.toml), expands ~ paths, and runs Validate so a bad
// configuration is rejected before any pipeline run starts.
package config
