package toolchain

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Runner abstracts external tool invocation so that the build and deploy
// pipelines can be exercised without the real binaries installed.
type Runner interface {
	// Run executes the command in dir, streaming output to the caller's
	// stdout/stderr. The subprocess runs to completion before Run returns.
	Run(ctx context.Context, dir string, name string, args ...string) error

	// Output executes the command and returns its trimmed stdout. On a
	// non-zero exit the captured stderr/stdout are folded into the error.
	Output(ctx context.Context, name string, args ...string) (string, error)
}

// ExecRunner runs commands with os/exec. All calls are blocking; there is no
// retry and no timeout beyond what the context carries.
type ExecRunner struct{}

// NewExecRunner creates a Runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) Run(ctx context.Context, dir string, name string, args ...string) error {
	path, err := exec.LookPath(name)
	if err != nil {
		return fmt.Errorf("%s not found in PATH: %w", name, err)
	}

	slog.Info("Running external command",
		"command", name,
		"args", strings.Join(args, " "),
		"dir", dir,
	)

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}

func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s not found in PATH: %w", name, err)
	}

	slog.Info("Running external command",
		"command", name,
		"args", strings.Join(args, " "),
	)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// Surface whatever the tool said before it failed; the caller
		// propagates the exit code untouched.
		return "", fmt.Errorf("%s %s: %w\nstderr: %s\nstdout: %s",
			name, strings.Join(args, " "), err,
			strings.TrimSpace(stderr.String()),
			strings.TrimSpace(stdout.String()))
	}

	return strings.TrimSpace(stdout.String()), nil
}
