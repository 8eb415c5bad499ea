package fingerprint

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// AlgorithmSHA1 is the SPDX checksum algorithm label for the digests produced
// by this package.
const AlgorithmSHA1 = "SHA1"

// File streams the file at path through SHA-1 and returns the lower-case hex
// digest. The file is read in chunks; it is never loaded into memory whole.
func File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	hasher := sha1.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// Sum returns the lower-case hex SHA-1 digest of data.
func Sum(data []byte) string {
	digest := sha1.Sum(data)
	return hex.EncodeToString(digest[:])
}

// VerificationCode derives the SPDX package verification code from per-file
// digests: excluded digests are dropped (every occurrence), the remainder is
// sorted lexicographically and concatenated without separators, and the
// concatenation is hashed. An empty remainder hashes the empty string, so the
// result is always a valid digest.
func VerificationCode(hashes []string, excluded ...string) string {
	skip := make(map[string]struct{}, len(excluded))
	for _, h := range excluded {
		skip[h] = struct{}{}
	}

	kept := make([]string, 0, len(hashes))
	for _, h := range hashes {
		if _, ok := skip[h]; ok {
			continue
		}
		kept = append(kept, h)
	}
	sort.Strings(kept)

	return Sum([]byte(strings.Join(kept, "")))
}
