// Package builder drives the contract build pipelines: the Soroban service
// contract via the stellar CLI and plain Freenet wasm contracts via cargo.
package builder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/inviti8/freenet-lepus/internal/artifact"
	"github.com/inviti8/freenet-lepus/internal/config"
	"github.com/inviti8/freenet-lepus/internal/manifest"
	"github.com/inviti8/freenet-lepus/internal/toolchain"
)

// ServiceContract is the Soroban service contract directory name.
const ServiceContract = "hvym-freenet-service"

// serviceWasmName is fixed by the service contract's package name.
const serviceWasmName = "hvym_freenet_service.wasm"

// Result describes a finished build.
type Result struct {
	Contract string // Contract directory name
	Path     string // Output artifact location
	Size     int64  // Artifact size in bytes
}

// Builder runs contract builds through the external toolchain.
type Builder struct {
	cfg     *config.Config
	stellar *toolchain.Stellar
	cargo   *toolchain.Cargo
}

// New creates a Builder using the given runner for all tool invocations.
func New(cfg *config.Config, runner toolchain.Runner) *Builder {
	return &Builder{
		cfg:     cfg,
		stellar: toolchain.NewStellar(runner),
		cargo:   toolchain.NewCargo(runner),
	}
}

// BuildService builds the hvym-freenet-service contract with the stellar
// CLI, optionally optimizing, and copies the artifact into the shared wasm
// directory under a name that encodes whether it was optimized.
func (b *Builder) BuildService(ctx context.Context, optimize bool) (*Result, error) {
	contractDir := b.cfg.ContractDir(ServiceContract)
	if info, err := os.Stat(contractDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("contract directory not found: %s", contractDir)
	}

	slog.Info("Building service contract",
		"contract", ServiceContract,
		"optimize", optimize,
	)

	if err := b.stellar.Build(ctx, contractDir, optimize); err != nil {
		return nil, err
	}

	// The target path embeds the architecture triple, which shifts with CLI
	// versions; the glob absorbs it.
	pattern := filepath.Join(contractDir, "target", "*", "release", serviceWasmName)
	built, err := artifact.Locate(pattern)
	if err != nil {
		return nil, err
	}

	outName := artifact.OutputName(serviceWasmName, optimize)
	dest, size, err := artifact.Copy(built, b.cfg.WasmDir, outName)
	if err != nil {
		return nil, err
	}

	slog.Info("Build complete", "artifact", dest, "size_bytes", size)

	return &Result{Contract: ServiceContract, Path: dest, Size: size}, nil
}

// BuildGeneric builds a named Freenet wasm contract (deposit-index, datapod,
// ...) with cargo for the wasm target and copies the artifact into the
// shared wasm directory.
func (b *Builder) BuildGeneric(ctx context.Context, name string) (*Result, error) {
	contractDir := b.cfg.ContractDir(name)
	if info, err := os.Stat(contractDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("contract directory not found: %s", contractDir)
	}

	pkgName, err := manifest.PackageName(contractDir)
	if err != nil {
		return nil, err
	}
	wasmName := manifest.WasmFilename(pkgName)

	slog.Info("Building wasm contract",
		"contract", name,
		"package", pkgName,
		"target", toolchain.WasmTarget,
	)

	if err := b.cargo.BuildWasm(ctx, contractDir); err != nil {
		return nil, err
	}

	builtPath := filepath.Join(contractDir, "target", toolchain.WasmTarget, "release", wasmName)
	if _, err := os.Stat(builtPath); err != nil {
		return nil, fmt.Errorf("%w: expected %s", artifact.ErrNotFound, builtPath)
	}

	dest, size, err := artifact.Copy(builtPath, b.cfg.WasmDir, wasmName)
	if err != nil {
		return nil, err
	}

	slog.Info("Build complete", "artifact", dest, "size_bytes", size)

	return &Result{Contract: name, Path: dest, Size: size}, nil
}
