// Package config loads, normalizes, and validates spdxgen configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SPDXGEN_PROBE_BINARY. The Config type centralizes every knob the CLI needs,
// so the scratch, output, and database locations are discovered in one pass.
//
// Downstream code should always go through this package for settings; it
// guarantees expanded paths and validated values.
package config
