// Package config defines configuration for the egit CLI.
//
// Configuration can be provided via:
//   - Command-line flags
//   - Environment variables (EGIT_ prefix; GITHUB_TOKEN as token fallback)
//   - YAML configuration file
package config
