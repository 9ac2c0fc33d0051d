// Package manifest resolves contract package names from Cargo manifests and
// derives the artifact filenames the build toolchain will produce.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
)

// cargoManifest is the subset of Cargo.toml this tooling cares about.
type cargoManifest struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
}

// PackageName reads the [package] name out of the Cargo.toml in contractDir.
func PackageName(contractDir string) (string, error) {
	path := filepath.Join(contractDir, "Cargo.toml")

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	var m cargoManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return "", fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	if m.Package.Name == "" {
		return "", fmt.Errorf("no package name in %s", path)
	}

	return m.Package.Name, nil
}

// WasmFilename maps a package name to the wasm artifact cargo emits for it:
// hyphens become underscores, `.wasm` is appended.
func WasmFilename(pkgName string) string {
	return strings.ReplaceAll(pkgName, "-", "_") + ".wasm"
}
