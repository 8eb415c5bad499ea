// Package deps reports the availability of the external binaries spdxgen can
// call at runtime.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"spdxgen/internal/config"
)

// Requirement defines an external binary spdxgen relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Defaults returns the runtime requirements for the provided configuration.
// The content probe is optional: scans fall back to built-in detection when
// the binary is missing.
func Defaults(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "Content probe",
			Command:     cfg.Scanner.ProbeBinary,
			Description: "Describes scanned files for type classification",
			Optional:    true,
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
