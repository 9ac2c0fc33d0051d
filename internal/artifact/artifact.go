// Package artifact locates and copies built wasm binaries between the
// build-tool target tree and the shared output directory.
package artifact

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrNotFound reports that no artifact exists where the build convention
// says one should. A build that "succeeded" but produced nothing matching
// is treated the same as a failed build.
var ErrNotFound = errors.New("wasm artifact not found")

// Locate returns the single artifact matching pattern, a filepath.Glob
// pattern. The glob absorbs the architecture triple in the target path,
// which varies with the build tool's version and host.
func Locate(pattern string) (string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", fmt.Errorf("bad artifact pattern %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: nothing matches %s", ErrNotFound, pattern)
	}
	return matches[0], nil
}

// OutputName derives the output filename for a service-contract build.
// The name encodes whether the build was optimized.
func OutputName(wasmFilename string, optimized bool) string {
	if !optimized {
		return wasmFilename
	}
	ext := filepath.Ext(wasmFilename)
	return wasmFilename[:len(wasmFilename)-len(ext)] + ".optimized" + ext
}

// Copy copies src into destDir under destName, creating destDir if needed,
// and returns the destination path and its size in bytes.
func Copy(src, destDir, destName string) (string, int64, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", 0, fmt.Errorf("failed to create output dir %s: %w", destDir, err)
	}

	in, err := os.Open(src)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open artifact %s: %w", src, err)
	}
	defer in.Close()

	dest := filepath.Join(destDir, destName)
	out, err := os.Create(dest)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create %s: %w", dest, err)
	}

	size, err := io.Copy(out, in)
	if err != nil {
		out.Close()
		return "", 0, fmt.Errorf("failed to copy artifact to %s: %w", dest, err)
	}
	if err := out.Close(); err != nil {
		return "", 0, fmt.Errorf("failed to close %s: %w", dest, err)
	}

	return dest, size, nil
}
