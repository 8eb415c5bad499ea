package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"spdxgen/internal/config"
	"spdxgen/internal/docstore"
	"spdxgen/internal/fingerprint"
	"spdxgen/internal/logging"
	"spdxgen/internal/services"
	"spdxgen/internal/services/magic"
	"spdxgen/internal/spdxid"
)

const component = "scanner"

// Prober abstracts file content probing for the scanner.
type Prober interface {
	Describe(ctx context.Context, path string) (string, error)
}

// Options adjust a single scan run.
type Options struct {
	// DocumentName overrides the title derived from the package path.
	DocumentName string
	// Exclude holds glob patterns merged with the configured exclusions.
	// Matching files stay in the document but their digests are dropped
	// from the verification code.
	Exclude []string
}

// Result captures everything a completed scan persisted. Excluded counts the
// files whose digests were dropped from the verification code.
type Result struct {
	Document         *docstore.Document
	Package          *docstore.Package
	Files            []*docstore.PackageFile
	VerificationCode string
	Excluded         int
}

// Scanner turns a package archive into a stored SPDX document.
type Scanner struct {
	cfg    *config.Config
	store  *docstore.Store
	probe  Prober
	logger *slog.Logger
}

// New constructs a Scanner. A nil probe falls back to the configured probe
// binary.
func New(cfg *config.Config, store *docstore.Store, probe Prober, logger *slog.Logger) *Scanner {
	if probe == nil {
		probe = magic.NewProber(cfg.Scanner.ProbeBinary, time.Duration(cfg.Scanner.ProbeTimeout)*time.Second)
	}
	return &Scanner{
		cfg:    cfg,
		store:  store,
		probe:  probe,
		logger: logging.NewComponentLogger(logger, component),
	}
}

// Scan hashes, probes, and persists the package at packagePath as a new SPDX
// document. Concurrent scans against the same data directory are serialized by
// a lock file; a held lock fails the scan instead of blocking.
func (s *Scanner) Scan(ctx context.Context, packagePath string, opts Options) (*Result, error) {
	ctx = services.WithOperation(ctx, "scan")
	log := logging.WithContext(ctx, s.logger)

	path, err := validateSource(packagePath)
	if err != nil {
		return nil, err
	}
	patterns := append(append([]string(nil), s.cfg.Scanner.Exclude...), opts.Exclude...)
	if err := validatePatterns(patterns); err != nil {
		return nil, err
	}

	if err := s.cfg.EnsureDirectories(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, component, "scan", "prepare directories", err)
	}

	lock := flock.New(s.cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, component, "scan", "acquire scan lock", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrTransient, component, "scan", "another scan is already running", nil)
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			log.Warn("failed to release scan lock", logging.Error(unlockErr))
		}
	}()

	log.Info("scan started", logging.String(logging.FieldPath, path))

	checksum, err := fingerprint.File(path)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, component, "scan", "hash package", err)
	}

	records, err := s.collectFiles(ctx, path)
	if err != nil {
		return nil, err
	}
	log.Info("files probed", logging.Int(logging.FieldFileCount, len(records)))

	hashes := make([]string, 0, len(records))
	var excludedHashes []string
	for _, rec := range records {
		hashes = append(hashes, rec.checksum)
		if matchesAny(patterns, rec.name) {
			excludedHashes = append(excludedHashes, rec.checksum)
		}
	}
	code := fingerprint.VerificationCode(hashes, excludedHashes...)

	docName := strings.TrimSpace(opts.DocumentName)
	if docName == "" {
		docName = spdxid.DocumentTitle(path)
	}
	doc, err := s.store.CreateDocument(ctx, docName, spdxid.Namespace(s.cfg.Document.NamespaceBase, docName), spdxid.NewRef())
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, component, "scan", "create document", err)
	}
	ctx = services.WithDocumentID(ctx, doc.ID)
	log = logging.WithContext(ctx, s.logger)

	fileName := filepath.Base(path)
	pkg, err := s.store.CreatePackage(ctx, doc.ID, spdxid.PackageName(fileName), fileName, checksum, code)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, component, "scan", "create package", err)
	}

	files := make([]*docstore.PackageFile, 0, len(records))
	for _, rec := range records {
		file, err := s.store.AddPackageFile(ctx, pkg.ID, rec.name, rec.checksum, rec.fileType)
		if err != nil {
			return nil, services.Wrap(services.ErrTransient, component, "scan", fmt.Sprintf("record file %s", rec.name), err)
		}
		files = append(files, file)
	}

	log.Info("document persisted",
		logging.String(logging.FieldPackage, pkg.Name),
		logging.Int(logging.FieldFileCount, len(files)),
		logging.Int("excluded_count", len(excludedHashes)),
		logging.String("verification_code", code))

	return &Result{
		Document:         doc,
		Package:          pkg,
		Files:            files,
		VerificationCode: code,
		Excluded:         len(excludedHashes),
	}, nil
}

func validateSource(packagePath string) (string, error) {
	trimmed := strings.TrimSpace(packagePath)
	if trimmed == "" {
		return "", services.Wrap(services.ErrValidation, component, "scan", "package path is required", nil)
	}
	path, err := filepath.Abs(trimmed)
	if err != nil {
		return "", services.Wrap(services.ErrValidation, component, "scan", "resolve package path", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", services.Wrap(services.ErrNotFound, component, "scan", fmt.Sprintf("package %s", path), err)
	}
	if info.IsDir() {
		return "", services.Wrap(services.ErrValidation, component, "scan", fmt.Sprintf("package path %s is a directory", path), nil)
	}
	return path, nil
}

func validatePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return services.Wrap(services.ErrValidation, component, "scan", fmt.Sprintf("invalid exclusion pattern %q", pattern), err)
		}
	}
	return nil
}

// matchesAny matches the member name and its base name so a bare pattern like
// "*.spdx" excludes members regardless of directory depth.
func matchesAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, filepath.Base(name)); ok {
			return true
		}
	}
	return false
}
