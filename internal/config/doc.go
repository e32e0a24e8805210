// Package config loads the apolice client configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/apolice/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing or blank, use defaults
//
// # TOML Format
//
//	base_url = "http://localhost:3000/api"
//	timeout = "10s"
//	require_criteria = true
//	refresh_interval = "0s"
//	log_file = "~/.local/state/apolice/apolice.log"
//	log_level = "info"
//	metrics_addr = ""
//
// Durations use Go syntax. A refresh_interval of zero disables periodic
// re-runs of the last search. metrics_addr enables the Prometheus endpoint
// when set. Tilde expansion is performed on log_file.
//
// # Error Handling
//
// Load returns errors for unreadable files, TOML syntax errors and invalid
// durations. A missing file is not an error.
//
// Command-line flags in cmd/apolice override the loaded values.
package config
