// Package fingerprint computes the SHA-1 digests SPDX documents are built
// from: per-file checksums and the package verification code derived from
// them.
//
// The verification code is order-insensitive. Callers may collect file digests
// in any order and exclude a subset (for example, files matched by exclusion
// globs) without affecting the result for the remaining set.
package fingerprint
