package scanner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"spdxgen/internal/archive"
	"spdxgen/internal/filetype"
	"spdxgen/internal/fingerprint"
	"spdxgen/internal/logging"
	"spdxgen/internal/services"
)

// fileRecord is one scanned file before persistence. name is the archive
// member name (or the base name for a single-file package).
type fileRecord struct {
	name     string
	checksum string
	fileType string
}

func (s *Scanner) collectFiles(ctx context.Context, path string) ([]fileRecord, error) {
	if !archive.IsArchive(path) {
		rec, err := s.probeFile(ctx, filepath.Base(path), path)
		if err != nil {
			return nil, err
		}
		return []fileRecord{rec}, nil
	}

	var records []fileRecord
	err := archive.WithExtraction(path, s.cfg.Paths.ScratchDir, func(dir string, members []string) error {
		collected, collectErr := s.collectMembers(ctx, dir, members)
		if collectErr != nil {
			return collectErr
		}
		records = collected
		return nil
	})
	if err != nil {
		if errors.Is(err, services.ErrValidation) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, services.Wrap(services.ErrValidation, component, "scan", "extract archive", err)
	}
	return records, nil
}

// collectMembers hashes and probes the extracted regular files. Directory
// members and special members that were never materialized are skipped.
func (s *Scanner) collectMembers(ctx context.Context, dir string, members []string) ([]fileRecord, error) {
	records := make([]fileRecord, 0, len(members))
	for _, member := range members {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		target := filepath.Join(dir, filepath.FromSlash(member))
		info, err := os.Lstat(target)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		rec, err := s.probeFile(ctx, member, target)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// probeFile hashes target and classifies its probe description. A failed
// probe demotes the file to OTHER instead of failing the scan.
func (s *Scanner) probeFile(ctx context.Context, name, target string) (fileRecord, error) {
	checksum, err := fingerprint.File(target)
	if err != nil {
		return fileRecord{}, services.Wrap(services.ErrValidation, component, "scan", fmt.Sprintf("hash %s", name), err)
	}

	kind := filetype.Other
	description, err := s.probe.Describe(ctx, target)
	if err != nil {
		s.logger.Warn("content probe failed",
			logging.String(logging.FieldPath, name),
			logging.String(logging.FieldChecksum, checksum),
			logging.String(logging.FieldErrorKind, services.Kind(err)),
			logging.Error(err))
	} else {
		kind = filetype.Classify(description)
	}

	return fileRecord{name: name, checksum: checksum, fileType: kind.String()}, nil
}
