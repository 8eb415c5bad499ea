package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnrecognizedFormat marks paths that are neither a readable tar archive
// (plain, gzip, or bzip2 compressed) nor a readable zip archive.
var ErrUnrecognizedFormat = errors.New("unrecognized archive format")

const scratchPrefix = "spdxgen-extract-"

// Extraction is an extracted archive rooted at a scratch directory. Members
// holds the member names exactly as the archive lists them, in archive order;
// directory members are included.
type Extraction struct {
	Dir     string
	Members []string

	closed bool
}

// Close removes the scratch directory and everything extracted into it.
// Close is idempotent.
func (e *Extraction) Close() error {
	if e == nil || e.closed {
		return nil
	}
	e.closed = true
	if e.Dir == "" {
		return nil
	}
	return os.RemoveAll(e.Dir)
}

// Extract unpacks the archive at path into a fresh scratch directory created
// under scratchParent (the system temp directory when empty). Tar detection
// runs before zip detection. On any failure the scratch directory is removed
// before returning; on success the caller owns the returned Extraction and
// must Close it.
func Extract(path, scratchParent string) (*Extraction, error) {
	if scratchParent != "" {
		if err := os.MkdirAll(scratchParent, 0o755); err != nil {
			return nil, fmt.Errorf("ensure scratch parent: %w", err)
		}
	}

	if looksLikeTar(path) {
		return extractTar(path, scratchParent)
	}
	if zr, err := zip.OpenReader(path); err == nil {
		defer zr.Close()
		return extractZip(zr, scratchParent)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnrecognizedFormat, filepath.Base(path))
}

// WithExtraction extracts the archive at path, hands the scratch directory
// and member list to fn, and removes the scratch directory when fn returns.
// Cleanup runs on success, on error, and on panic.
func WithExtraction(path, scratchParent string, fn func(dir string, members []string) error) (err error) {
	extraction, extractErr := Extract(path, scratchParent)
	if extractErr != nil {
		return extractErr
	}
	defer func() {
		if closeErr := extraction.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	err = fn(extraction.Dir, extraction.Members)
	return err
}

// IsArchive reports whether path holds a readable tar or zip archive.
func IsArchive(path string) bool {
	if looksLikeTar(path) {
		return true
	}
	zr, err := zip.OpenReader(path)
	if err != nil {
		return false
	}
	zr.Close()
	return true
}

// tarReader wraps f with the matching decompressor, sniffed from the leading
// magic bytes, and returns a tar reader positioned at the first member.
func tarReader(f *os.File) (*tar.Reader, error) {
	header := make([]byte, 3)
	if _, err := io.ReadFull(f, header); err != nil {
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	var reader io.Reader = f
	switch {
	case header[0] == 0x1f && header[1] == 0x8b:
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		reader = gz
	case header[0] == 'B' && header[1] == 'Z' && header[2] == 'h':
		reader = bzip2.NewReader(f)
	}
	return tar.NewReader(reader), nil
}

func looksLikeTar(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	tr, err := tarReader(f)
	if err != nil {
		return false
	}
	_, err = tr.Next()
	return err == nil
}

func extractTar(path, scratchParent string) (*Extraction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tr, err := tarReader(f)
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp(scratchParent, scratchPrefix)
	if err != nil {
		return nil, fmt.Errorf("create scratch directory: %w", err)
	}

	members, err := copyTarMembers(tr, dir)
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, err
	}
	return &Extraction{Dir: dir, Members: members}, nil
}

func copyTarMembers(tr *tar.Reader, dir string) ([]string, error) {
	var members []string
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return members, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read tar member: %w", err)
		}

		target, err := securePath(dir, header.Name)
		if err != nil {
			return nil, err
		}
		members = append(members, header.Name)

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return nil, err
			}
		case tar.TypeReg:
			if err := writeMember(target, tr, memberMode(header.FileInfo().Mode())); err != nil {
				return nil, err
			}
		default:
			// Symlinks, devices, and other special members stay listed but
			// are never materialized in the scratch directory.
		}
	}
}

func extractZip(zr *zip.ReadCloser, scratchParent string) (*Extraction, error) {
	dir, err := os.MkdirTemp(scratchParent, scratchPrefix)
	if err != nil {
		return nil, fmt.Errorf("create scratch directory: %w", err)
	}

	members := make([]string, 0, len(zr.File))
	for _, member := range zr.File {
		target, err := securePath(dir, member.Name)
		if err != nil {
			_ = os.RemoveAll(dir)
			return nil, err
		}
		members = append(members, member.Name)

		if member.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				_ = os.RemoveAll(dir)
				return nil, err
			}
			continue
		}
		if err := copyZipMember(member, target); err != nil {
			_ = os.RemoveAll(dir)
			return nil, err
		}
	}
	return &Extraction{Dir: dir, Members: members}, nil
}

func copyZipMember(member *zip.File, target string) error {
	in, err := member.Open()
	if err != nil {
		return fmt.Errorf("open zip member %s: %w", member.Name, err)
	}
	defer in.Close()
	return writeMember(target, in, memberMode(member.FileInfo().Mode()))
}

// securePath joins name under dir, rejecting members that would escape it.
func securePath(dir, name string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive member escapes scratch directory: %s", name)
	}
	return filepath.Join(dir, cleaned), nil
}

func writeMember(target string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func memberMode(mode os.FileMode) os.FileMode {
	perm := mode.Perm()
	if perm == 0 {
		perm = 0o644
	}
	return perm
}
