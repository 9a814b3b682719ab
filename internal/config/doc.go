// Package config handles configuration loading and merging for reportdash.
//
// # Configuration Precedence
//
// Configuration values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--api-url, --refresh, --theme, --no-color, ...)
//  2. Environment variables (REPORTDASH_*, NO_COLOR)
//  3. Config file (.reportdash.yaml or .reportdash.toml in the working directory, or
//     config.yaml / config.toml under the user config dir, e.g. ~/.config/reportdash/)
//  4. Hardcoded defaults
//
// An explicit --config path replaces the file search; a missing or malformed
// explicit file is an error.
//
// # Environment Variables
//
//   - REPORTDASH_API_URL: base URL of the load-test service
//   - REPORTDASH_TOKEN: bearer token sent with every request
//   - REPORTDASH_REFRESH_INTERVAL: polling period, e.g. "30s"
//   - REPORTDASH_THEME: default, orca or mono
//   - REPORTDASH_LOG_LEVEL, REPORTDASH_LOG_FILE: logging
//   - REPORTDASH_NO_COLOR or NO_COLOR: set to "true" or "1" to disable colors
package config
