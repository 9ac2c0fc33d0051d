package config

import (
	"fmt"
	"os"
	"path/filepath"
)

type Config struct {
	// Directory holding the contract source trees
	ContractsDir string

	// Shared output directory for built wasm artifacts
	WasmDir string

	// Optional Postgres URL; when set, deployment records are mirrored there
	DatabaseURL string

	// Log level ( debug, info, warn, error )
	LogLevel string
}

// Load returns the tooling configuration from environment variables,
// falling back to the repository-layout defaults.
func Load() *Config {
	contractsDir := getEnv("FREENET_CONTRACTS_DIR", "contracts")

	return &Config{
		ContractsDir: contractsDir,

		// Built artifacts are shared between the build and deploy tools
		WasmDir: getEnv("FREENET_WASM_DIR", filepath.Join(contractsDir, "wasm")),

		// Empty means the JSON ledger is the only deployment record
		DatabaseURL: os.Getenv("DATABASE_URL"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.ContractsDir == "" {
		return fmt.Errorf("ContractsDir is required")
	}
	if c.WasmDir == "" {
		return fmt.Errorf("WasmDir is required")
	}
	return nil
}

// ContractDir returns the source directory for a named contract.
func (c *Config) ContractDir(name string) string {
	return filepath.Join(c.ContractsDir, name)
}

// DeploymentsFile returns the path of the JSON deployment ledger.
func (c *Config) DeploymentsFile() string {
	return filepath.Join(c.ContractsDir, "deployments.json")
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
