// Package config loads, normalizes, and validates mediadiary configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the MEDIADIARY_DATA_DIR environment fallback. The
// Config type centralizes where entries are stored, which view the CLI opens
// by default, how placeholder covers are built, and how logs are written.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical view and sort names, and clear validation errors.
package config
