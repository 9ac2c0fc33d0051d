package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/inviti8/freenet-lepus/internal/builder"
	"github.com/inviti8/freenet-lepus/internal/config"
	"github.com/inviti8/freenet-lepus/internal/toolchain"
)

var contractName string

var rootCmd = &cobra.Command{
	Use:   "build-wasm",
	Short: "Build a Freenet WASM contract (deposit-index, datapod, ...)",
	Long: `build-wasm compiles a contract under the contracts directory with
cargo for the wasm32-unknown-unknown target and copies the artifact into
the shared output directory.

The artifact filename follows cargo convention: the package name from
Cargo.toml with hyphens replaced by underscores, plus .wasm.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		setupLogger(cfg.LogLevel)

		b := builder.New(cfg, toolchain.NewExecRunner())
		res, err := b.BuildGeneric(cmd.Context(), contractName)
		if err != nil {
			return err
		}

		fmt.Printf("Done: %s (%d bytes)\n", res.Path, res.Size)
		return nil
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

	rootCmd.Flags().StringVar(&contractName, "contract", "",
		"Contract directory name under contracts/ (e.g. deposit-index, datapod)")
	_ = rootCmd.MarkFlagRequired("contract")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(toolchain.ExitCode(err))
	}
}
