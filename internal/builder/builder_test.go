package builder

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/inviti8/freenet-lepus/internal/config"
)

// buildingRunner pretends to be the toolchain: Run drops the expected
// artifact into the conventional target path.
type buildingRunner struct {
	runs      int
	targetDir string // relative to the command's working dir
	wasmName  string
}

func (f *buildingRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	f.runs++
	target := filepath.Join(dir, f.targetDir)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(target, f.wasmName), []byte{0x00, 0x61, 0x73, 0x6d}, 0o644)
}

func (f *buildingRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	f.runs++
	return "", nil
}

// brokenRunner succeeds without producing any artifact.
type brokenRunner struct {
	runs int
}

func (f *brokenRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	f.runs++
	return nil
}

func (f *brokenRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	f.runs++
	return "", nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		ContractsDir: dir,
		WasmDir:      filepath.Join(dir, "wasm"),
		LogLevel:     "error",
	}
}

func writeContract(t *testing.T, cfg *config.Config, name, pkgName string) {
	t.Helper()
	dir := cfg.ContractDir(name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create contract dir: %v", err)
	}
	cargoToml := "[package]\nname = \"" + pkgName + "\"\nversion = \"0.1.0\"\n"
	if err := os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte(cargoToml), 0o644); err != nil {
		t.Fatalf("failed to write Cargo.toml: %v", err)
	}
}

func TestBuildService_MissingContractDir(t *testing.T) {
	cfg := testConfig(t)
	runner := &brokenRunner{}
	b := New(cfg, runner)

	if _, err := b.BuildService(context.Background(), true); err == nil {
		t.Fatal("Expected error for missing contract directory")
	}

	if runner.runs != 0 {
		t.Errorf("Expected no tool invocation, got %d", runner.runs)
	}
}

func TestBuildService_Optimized(t *testing.T) {
	cfg := testConfig(t)
	writeContract(t, cfg, ServiceContract, ServiceContract)

	runner := &buildingRunner{
		targetDir: filepath.Join("target", "wasm32v1-none", "release"),
		wasmName:  "hvym_freenet_service.wasm",
	}
	b := New(cfg, runner)

	res, err := b.BuildService(context.Background(), true)
	if err != nil {
		t.Fatalf("BuildService failed: %v", err)
	}

	expected := filepath.Join(cfg.WasmDir, "hvym_freenet_service.optimized.wasm")
	if res.Path != expected {
		t.Errorf("Expected artifact at %q, got %q", expected, res.Path)
	}
	if res.Size != 4 {
		t.Errorf("Expected size 4, got %d", res.Size)
	}
	if _, err := os.Stat(expected); err != nil {
		t.Errorf("Artifact missing at %q: %v", expected, err)
	}
}

func TestBuildService_NoOptimizeNameEncodesFlag(t *testing.T) {
	cfg := testConfig(t)
	writeContract(t, cfg, ServiceContract, ServiceContract)

	runner := &buildingRunner{
		targetDir: filepath.Join("target", "wasm32v1-none", "release"),
		wasmName:  "hvym_freenet_service.wasm",
	}
	b := New(cfg, runner)

	res, err := b.BuildService(context.Background(), false)
	if err != nil {
		t.Fatalf("BuildService failed: %v", err)
	}

	expected := filepath.Join(cfg.WasmDir, "hvym_freenet_service.wasm")
	if res.Path != expected {
		t.Errorf("Expected artifact at %q, got %q", expected, res.Path)
	}
}

func TestBuildService_ArtifactMissingAfterBuild(t *testing.T) {
	cfg := testConfig(t)
	writeContract(t, cfg, ServiceContract, ServiceContract)

	runner := &brokenRunner{}
	b := New(cfg, runner)

	if _, err := b.BuildService(context.Background(), true); err == nil {
		t.Fatal("Expected error when the build produced no artifact")
	}
	if runner.runs != 1 {
		t.Errorf("Expected exactly 1 tool invocation, got %d", runner.runs)
	}
}

func TestBuildGeneric(t *testing.T) {
	cfg := testConfig(t)
	writeContract(t, cfg, "deposit-index", "deposit-index")

	runner := &buildingRunner{
		targetDir: filepath.Join("target", "wasm32-unknown-unknown", "release"),
		wasmName:  "deposit_index.wasm",
	}
	b := New(cfg, runner)

	res, err := b.BuildGeneric(context.Background(), "deposit-index")
	if err != nil {
		t.Fatalf("BuildGeneric failed: %v", err)
	}

	expected := filepath.Join(cfg.WasmDir, "deposit_index.wasm")
	if res.Path != expected {
		t.Errorf("Expected artifact at %q, got %q", expected, res.Path)
	}
}

func TestBuildGeneric_MissingDir(t *testing.T) {
	cfg := testConfig(t)
	runner := &brokenRunner{}
	b := New(cfg, runner)

	if _, err := b.BuildGeneric(context.Background(), "deposit-index"); err == nil {
		t.Fatal("Expected error for missing contract directory")
	}
	if runner.runs != 0 {
		t.Errorf("Expected no tool invocation, got %d", runner.runs)
	}
}

func TestBuildGeneric_MissingManifest(t *testing.T) {
	cfg := testConfig(t)
	if err := os.MkdirAll(cfg.ContractDir("datapod"), 0o755); err != nil {
		t.Fatalf("failed to create contract dir: %v", err)
	}

	runner := &brokenRunner{}
	b := New(cfg, runner)

	if _, err := b.BuildGeneric(context.Background(), "datapod"); err == nil {
		t.Fatal("Expected error for missing Cargo.toml")
	}
	if runner.runs != 0 {
		t.Errorf("Expected no tool invocation, got %d", runner.runs)
	}
}
