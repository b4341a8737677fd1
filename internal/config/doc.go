// Package config resolves runtime configuration from defaults, environment
// variables, an optional YAML file and command-line flags, in increasing
// order of precedence.
package config
