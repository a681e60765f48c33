// Package config handles loading and parsing Shopkeep configuration files.
//
// # Overview
//
// This package reads Shopkeep's TOML configuration to discover the portal
// API endpoint, the asset host for product images, and logging/polling
// settings.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/shopkeep/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/shopkeep/config.toml
//   - API endpoint: 127.0.0.1:8080
//   - Asset base: empty (image paths resolve against the API host)
//   - Log file: ~/.local/share/shopkeep/shopkeep.log
//   - Catalog refresh: every 30 seconds
//
// # TOML Format
//
// Example config.toml:
//
//	api_base = "https://portal.example.com"
//	asset_base = "https://cdn.example.com"
//	log_file = "~/.local/share/shopkeep/shopkeep.log"
//	poll_seconds = 30
//
// All fields are optional. Tilde expansion is performed automatically for
// paths.
//
// # Error Handling
//
// Load returns errors for path expansion failures, file read errors (except
// os.ErrNotExist, which triggers defaults), and TOML parsing errors. A
// missing config file is NOT an error; Shopkeep works out of the box against
// a local portal instance.
//
// # Design Philosophy
//
// The config package is read-only and stateless: it loads configuration once
// at startup and returns an immutable Config struct. No global state or
// singleton patterns are used.
package config
