// Package deployer uploads built wasm artifacts to a Stellar network,
// instantiates them with constructor arguments, and records the result.
package deployer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/stellar/go/strkey"

	"github.com/inviti8/freenet-lepus/internal/artifact"
	"github.com/inviti8/freenet-lepus/internal/config"
	"github.com/inviti8/freenet-lepus/internal/deployments"
	"github.com/inviti8/freenet-lepus/internal/manifest"
	"github.com/inviti8/freenet-lepus/internal/storage"
	"github.com/inviti8/freenet-lepus/internal/toolchain"
)

// Deployer runs the upload/deploy sequence through the stellar CLI.
// Every step is a blocking subprocess; any failure aborts the sequence
// with no rollback and no retry.
type Deployer struct {
	cfg     *config.Config
	stellar *toolchain.Stellar
	ledger  *deployments.Ledger
	mirror  storage.Repository // nil when no database is configured
}

// New creates a Deployer. mirror may be nil.
func New(cfg *config.Config, runner toolchain.Runner, mirror storage.Repository) *Deployer {
	return &Deployer{
		cfg:     cfg,
		stellar: toolchain.NewStellar(runner),
		ledger:  deployments.NewLedger(cfg.DeploymentsFile()),
		mirror:  mirror,
	}
}

// Deploy uploads the optimized artifact for contract, deploys it to the
// network with the resolved admin and constructor args, and merges the
// outcome into the deployment ledger.
func (d *Deployer) Deploy(ctx context.Context, contract, deployerAcct, netName string) (*deployments.Record, error) {
	passphrase, err := NetworkPassphrase(netName)
	if err != nil {
		return nil, err
	}

	// Artifact and args filenames follow the manifest's package name. The
	// deployer only requires the prebuilt artifact, so when the source tree
	// is absent the directory name stands in for the package name.
	pkgName := contract
	if name, err := manifest.PackageName(d.cfg.ContractDir(contract)); err == nil {
		pkgName = name
	}
	wasmName := manifest.WasmFilename(pkgName)
	wasmPath := filepath.Join(d.cfg.WasmDir, artifact.OutputName(wasmName, true))
	if _, err := os.Stat(wasmPath); err != nil {
		return nil, fmt.Errorf("wasm not found at %s, run build-contract first", wasmPath)
	}

	argsPath := filepath.Join(d.cfg.ContractsDir,
		strings.TrimSuffix(wasmName, ".wasm")+"_args.json")
	args, err := LoadConstructorArgs(argsPath)
	if err != nil {
		return nil, err
	}

	identity, err := ResolveAdminIdentity(deployerAcct, args)
	if err != nil {
		return nil, err
	}

	slog.Info("Deploying contract",
		"contract", contract,
		"network", netName,
		"passphrase", passphrase,
		"identity", identity,
	)

	wasmHash, err := d.stellar.Upload(ctx, wasmPath, identity, netName)
	if err != nil {
		return nil, err
	}
	slog.Info("Uploaded wasm", "wasm_hash", wasmHash)

	adminAddr, err := d.stellar.KeysAddress(ctx, identity)
	if err != nil {
		return nil, err
	}
	if !strkey.IsValidEd25519PublicKey(adminAddr) {
		return nil, fmt.Errorf("stellar keys address returned %q, not an account public key", adminAddr)
	}

	token := args.Token
	if token == "" {
		token, err = d.stellar.NativeAssetContractID(ctx, netName)
		if err != nil {
			return nil, err
		}
		slog.Info("Resolved native asset contract", "token", token)
	}
	if _, err := strkey.Decode(strkey.VersionByteContract, token); err != nil {
		return nil, fmt.Errorf("invalid token contract address %q: %w", token, err)
	}

	burnBps := args.BurnBpsOrDefault()
	contractID, err := d.stellar.Deploy(ctx, wasmHash, identity, netName, []string{
		"--admin", adminAddr,
		"--burn_bps", strconv.Itoa(burnBps),
		"--token", token,
	})
	if err != nil {
		return nil, err
	}
	if _, err := strkey.Decode(strkey.VersionByteContract, contractID); err != nil {
		return nil, fmt.Errorf("stellar contract deploy returned %q, not a contract id: %w", contractID, err)
	}
	slog.Info("Deployed contract", "contract_id", contractID)

	rec := deployments.Record{
		ContractID: contractID,
		WasmHash:   wasmHash,
		Admin:      adminAddr,
		BurnBps:    burnBps,
		Token:      token,
		Network:    netName,
	}

	if err := d.ledger.Record(contract, rec); err != nil {
		return nil, err
	}
	slog.Info("Deployment saved", "ledger", d.ledger.Path(), "key", deployments.Key(contract, netName))

	// The mirror is best-effort: the JSON ledger already holds the truth.
	if d.mirror != nil {
		if prev, err := d.mirror.GetDeploymentRecord(ctx, contract, netName); err == nil {
			slog.Info("Replacing mirrored deployment",
				"key", deployments.Key(contract, netName),
				"previous_contract_id", prev.ContractID,
			)
		}
		if err := d.mirror.SaveDeploymentRecord(ctx, contract, &rec); err != nil {
			slog.Warn("Failed to mirror deployment record", "error", err)
		}
	}

	return &rec, nil
}
