// Package config loads, normalizes, and validates coverfinder configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// COVERFINDER_CATALOG_BASE_URL. The Config type centralizes every knob the
// resolvers, cache, HTTP API and CLI need so endpoints and limits are
// discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// trimmed endpoints, canonical log formats, and clear validation errors.
package config
