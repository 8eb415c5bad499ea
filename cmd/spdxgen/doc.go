// Package main hosts the spdxgen CLI entrypoint and command graph.
//
// The Cobra-based command tree covers scanning packages into SPDX documents,
// listing and rendering stored documents, attaching extracted licensing
// information, and environment diagnostics. It centralizes configuration
// resolution and store access so subcommands can focus on user experience
// instead of wiring.
//
// New behaviour belongs in the internal packages first; commands here should
// stay thin translations from flags to those packages.
package main
