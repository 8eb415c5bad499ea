package preflight

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"spdxgen/internal/config"
	"spdxgen/internal/deps"
	"spdxgen/internal/docstore"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckDatabase verifies the metadata store opens and passes its own
// diagnostics. Opening creates the database file on first use; a missing
// parent directory fails the check instead.
func CheckDatabase(ctx context.Context, cfg *config.Config) Result {
	const name = "Database"

	store, err := docstore.OpenPath(cfg.Database.Path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", cfg.Database.Path, err)}
	}
	defer store.Close()

	health, err := store.CheckHealth(ctx)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", cfg.Database.Path, err)}
	}
	if health.Error != "" {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %s)", cfg.Database.Path, health.Error)}
	}
	return Result{
		Name:   name,
		Passed: true,
		Detail: fmt.Sprintf("%s (schema v%s, %d documents)", cfg.Database.Path, health.SchemaVersion, health.TotalDocuments),
	}
}

// CheckProbe reports content-probe availability. The probe is optional, so a
// missing binary still passes; the detail records that built-in detection
// takes over.
func CheckProbe(cfg *config.Config) Result {
	const name = "Content probe"

	statuses := deps.CheckBinaries(deps.Defaults(cfg))
	if len(statuses) == 0 {
		return Result{Name: name, Passed: true, Detail: "built-in detection active"}
	}
	status := statuses[0]
	if status.Available {
		return Result{Name: name, Passed: true, Detail: status.Command}
	}
	return Result{Name: name, Passed: true, Detail: status.Detail + " (built-in detection active)"}
}

// ProbeVersion reports the content-probe version line for status output.
// Failures degrade to an empty string; the probe is optional everywhere.
func ProbeVersion(ctx context.Context, binary string) string {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return ""
	}
	if _, err := exec.LookPath(binary); err != nil {
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	output, err := exec.CommandContext(ctx, binary, "--version").Output() //nolint:gosec
	if err != nil {
		return ""
	}
	line := strings.TrimSpace(string(output))
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = strings.TrimSpace(line[:idx])
	}
	return line
}
