package toolchain

import (
	"errors"
	"os/exec"
)

// ExitCode maps an error to the process exit status: a failed external
// command propagates its own exit code, everything else is 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}
	return 1
}
