package docstore

import "errors"

// ErrFileNotFound indicates a licensing insert referenced a file checksum
// with no matching package_files row.
var ErrFileNotFound = errors.New("package file not found")
