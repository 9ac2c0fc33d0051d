package toolchain

import "context"

// WasmTarget is the compilation target for Freenet contract builds.
const WasmTarget = "wasm32-unknown-unknown"

// Cargo wraps the cargo invocations used for plain wasm contract builds.
type Cargo struct {
	runner Runner
}

// NewCargo creates a Cargo wrapper on top of the given runner.
func NewCargo(runner Runner) *Cargo {
	return &Cargo{runner: runner}
}

// BuildWasm runs a release build for the wasm target inside contractDir.
// The artifact lands at target/<triple>/release/<pkg>.wasm by cargo
// convention; locating it is the caller's concern.
func (c *Cargo) BuildWasm(ctx context.Context, contractDir string) error {
	return c.runner.Run(ctx, contractDir, "cargo",
		"build", "--target", WasmTarget, "--release")
}
