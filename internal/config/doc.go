// Package config handles loading and parsing stanza's configuration file.
//
// # Overview
//
// This package reads the TOML configuration that points stanza at a poems
// service and identifies the viewing user. The core application consumes an
// immutable Config struct; nothing here is global or reloaded at runtime.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/stanza/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # TOML Format
//
// Example config.toml:
//
//	server = "poems.example.com:8787"
//	token = "bearer-credential"
//	user_id = "u-42"
//	user_name = "Ada"
//	admin = false
//	page_size = 10
//	theme = "Dracula"
//	log_file = "~/.local/share/stanza/stanza.log"
//
// All fields are optional. Tilde expansion is performed for paths.
//
// # Error Handling
//
// Missing files are NOT an error; stanza works out-of-the-box against a
// local server. Load returns errors only for unreadable files, TOML parse
// failures, and path expansion failures.
package config
