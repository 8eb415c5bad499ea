// Package magic resolves file type descriptions for scanned files.
//
// It shells out to a file(1) binary for libmagic-quality descriptions and
// degrades to built-in content sniffing when the binary is absent or errors,
// translating detected MIME types into the phrases file(1) would print so
// classification behaves the same on both paths. Tests can swap in a fake
// executor to avoid running the real binary.
package magic
