// Package config loads, normalizes, and validates larknotify configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files from ~/.config/larknotify/config.toml or a
// larknotify.toml in the working directory.
package config
