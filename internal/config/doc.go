// Package config loads, normalizes, and validates chatscribe configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours .env/environment overrides such
// as CHATSCRIBE_CHAT. Always obtain settings through this package so
// downstream code receives sanitized paths and clear validation errors.
package config
