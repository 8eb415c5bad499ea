// Package scanner orchestrates a package scan end to end: it locks out
// concurrent runs, extracts archives into scratch space, hashes and probes
// every member file, derives the package verification code, and persists the
// resulting document through the store.
package scanner
