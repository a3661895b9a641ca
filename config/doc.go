// Package config handles loading and validation of the resvalue configuration from a
// YAML file, RESVALUE_* environment variables and command-line overrides. It defines
// the ordered source chain, the secrets to resolve and where generated resources go.
package config
