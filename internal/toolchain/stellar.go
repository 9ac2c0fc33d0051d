package toolchain

import "context"

// Stellar wraps the stellar CLI (v25.x) behind typed operations. The CLI's
// flag set and bare-string stdout are a versioned external contract; any
// tool-version drift is absorbed here rather than in the callers.
type Stellar struct {
	runner Runner
}

// NewStellar creates a Stellar CLI wrapper on top of the given runner.
func NewStellar(runner Runner) *Stellar {
	return &Stellar{runner: runner}
}

// Build runs `stellar contract build` inside contractDir. With optimize set,
// the CLI applies wasm-opt in place; the artifact name does not change.
func (s *Stellar) Build(ctx context.Context, contractDir string, optimize bool) error {
	args := []string{"contract", "build"}
	if optimize {
		args = append(args, "--optimize")
	}
	return s.runner.Run(ctx, contractDir, "stellar", args...)
}

// Upload installs the wasm on the network and returns the wasm hash the CLI
// prints on stdout.
func (s *Stellar) Upload(ctx context.Context, wasmPath, sourceAccount, network string) (string, error) {
	return s.runner.Output(ctx, "stellar",
		"contract", "upload",
		"--wasm", wasmPath,
		"--source-account", sourceAccount,
		"--network", network,
	)
}

// KeysAddress resolves a CLI identity name to its public key.
func (s *Stellar) KeysAddress(ctx context.Context, identity string) (string, error) {
	return s.runner.Output(ctx, "stellar", "keys", "address", identity)
}

// NativeAssetContractID returns the Stellar Asset Contract address for native
// XLM on the given network.
func (s *Stellar) NativeAssetContractID(ctx context.Context, network string) (string, error) {
	return s.runner.Output(ctx, "stellar",
		"contract", "id", "asset",
		"--asset", "native",
		"--network", network,
	)
}

// Deploy instantiates the uploaded wasm with constructor arguments and
// returns the new contract id. Constructor args follow the `--` separator,
// each as `--<name> <value>` in the order given.
func (s *Stellar) Deploy(ctx context.Context, wasmHash, sourceAccount, network string, ctorArgs []string) (string, error) {
	args := []string{
		"contract", "deploy",
		"--wasm-hash", wasmHash,
		"--source-account", sourceAccount,
		"--network", network,
		"--",
	}
	args = append(args, ctorArgs...)
	return s.runner.Output(ctx, "stellar", args...)
}
