package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/inviti8/freenet-lepus/internal/builder"
	"github.com/inviti8/freenet-lepus/internal/config"
	"github.com/inviti8/freenet-lepus/internal/deployer"
	"github.com/inviti8/freenet-lepus/internal/retry"
	"github.com/inviti8/freenet-lepus/internal/storage"
	"github.com/inviti8/freenet-lepus/internal/toolchain"
)

var (
	contractName string
	deployerAcct string
	networkName  string
)

var rootCmd = &cobra.Command{
	Use:   "deploy-contract",
	Short: "Deploy a built Soroban contract to a Stellar network",
	Long: `deploy-contract uploads the optimized wasm artifact, resolves the
admin address and the native asset contract, deploys the contract with its
constructor arguments, and records the result in contracts/deployments.json.

The optimized artifact and the constructor-arguments file must already
exist; run build-contract first.

Requires stellar-cli v25.1.0:
  cargo install stellar-cli --version 25.1.0 --locked`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		setupLogger(cfg.LogLevel)

		ctx := cmd.Context()

		// Optional Postgres mirror of the deployment ledger
		var mirror storage.Repository
		if cfg.DatabaseURL != "" {
			repo, err := storage.NewPostgresRepository(ctx, cfg.DatabaseURL,
				retry.NewStrategy(retry.LoadConfig()))
			if err != nil {
				slog.Warn("Deployment mirror unavailable, continuing with JSON ledger only",
					"error", err)
			} else {
				mirror = repo
				defer repo.Close()
			}
		}

		d := deployer.New(cfg, toolchain.NewExecRunner(), mirror)
		rec, err := d.Deploy(ctx, contractName, deployerAcct, networkName)
		if err != nil {
			return err
		}

		fmt.Printf("Done: %s\n", rec.ContractID)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List deployment records from the Postgres mirror",
	Long: `list queries the deployment-record mirror and prints one line per
recorded deployment. Requires DATABASE_URL to be set.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		setupLogger(cfg.LogLevel)

		if cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required to list mirrored deployments")
		}

		ctx := cmd.Context()
		repo, err := storage.NewPostgresRepository(ctx, cfg.DatabaseURL,
			retry.NewStrategy(retry.LoadConfig()))
		if err != nil {
			return err
		}
		defer repo.Close()

		if err := repo.Ping(ctx); err != nil {
			return fmt.Errorf("deployment mirror unreachable: %w", err)
		}

		records, err := repo.ListDeploymentRecords(ctx, 100, 0)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NETWORK\tCONTRACT ID\tADMIN\tWASM HASH")
		for _, rec := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				rec.Network, rec.ContractID, rec.Admin, rec.WasmHash)
		}
		return w.Flush()
	},
}

func setupLogger(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
}

func main() {
	_ = godotenv.Load()

	rootCmd.Flags().StringVar(&contractName, "contract", builder.ServiceContract,
		"Contract directory name under contracts/")
	rootCmd.Flags().StringVar(&deployerAcct, "deployer-acct", "",
		"Stellar CLI identity name for the deployer account")
	rootCmd.Flags().StringVar(&networkName, "network", "",
		fmt.Sprintf("Target network (%s)", strings.Join(deployer.Networks, ", ")))
	_ = rootCmd.MarkFlagRequired("network")

	rootCmd.AddCommand(listCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(toolchain.ExitCode(err))
	}
}
