package magic

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"spdxgen/internal/services"
)

// Executor abstracts command execution for the prober.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) ([]byte, error)
}

// commandExecutor executes commands using os/exec.
type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	return cmd.Output()
}

// Prober resolves human-readable file type descriptions. It shells out to the
// configured file(1) binary and falls back to built-in content sniffing when
// the binary is missing or fails.
type Prober struct {
	binary  string
	timeout time.Duration
	exec    Executor
}

// NewProber constructs a Prober for the provided file(1) binary. A zero
// timeout disables the per-probe deadline. An empty binary skips the external
// probe entirely and relies on built-in detection.
func NewProber(binary string, timeout time.Duration) *Prober {
	return newProber(strings.TrimSpace(binary), timeout, commandExecutor{})
}

// NewProberWithExecutor allows injecting a custom executor for testing.
func NewProberWithExecutor(binary string, timeout time.Duration, exec Executor) *Prober {
	if exec == nil {
		exec = commandExecutor{}
	}
	return newProber(strings.TrimSpace(binary), timeout, exec)
}

func newProber(binary string, timeout time.Duration, exec Executor) *Prober {
	return &Prober{binary: binary, timeout: timeout, exec: exec}
}

// Describe returns a file(1) style description for the file at path. Probe
// failures degrade to content sniffing so a scan never stalls on a missing
// or broken binary; only when both mechanisms fail is an error returned.
func (p *Prober) Describe(ctx context.Context, path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", services.Wrap(services.ErrValidation, "magic", "describe", "path required", nil)
	}

	description, runErr := p.probe(ctx, path)
	if runErr == nil && description != "" {
		return description, nil
	}

	mtype, detectErr := mimetype.DetectFile(path)
	if detectErr != nil {
		if runErr != nil {
			marker := services.ErrExternalTool
			if errors.Is(runErr, context.DeadlineExceeded) {
				marker = services.ErrTimeout
			}
			return "", services.Wrap(marker, "magic", "describe", "file probe and fallback detection failed", runErr)
		}
		return "", services.Wrap(services.ErrExternalTool, "magic", "describe", "fallback detection failed", detectErr)
	}

	return fallbackDescription(mtype), nil
}

func (p *Prober) probe(ctx context.Context, path string) (string, error) {
	if p.binary == "" {
		return "", errors.New("probe binary not configured")
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	output, err := p.exec.Run(ctx, p.binary, []string{"--brief", path})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", err
	}

	return strings.TrimSpace(string(output)), nil
}
