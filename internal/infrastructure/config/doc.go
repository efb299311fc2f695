// Package config loads and validates dmxcore configuration.
//
// Configuration is layered: hardcoded defaults, then the YAML file, then
// DMXCORE_* environment variable overrides. The loaded Config is immutable
// after Load returns; components receive the sub-sections they need.
package config
