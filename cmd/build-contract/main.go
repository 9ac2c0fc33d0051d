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

var noOptimize bool

var rootCmd = &cobra.Command{
	Use:   "build-contract",
	Short: "Build and optimize the hvym-freenet-service Soroban contract",
	Long: `build-contract compiles the hvym-freenet-service contract with the
stellar CLI and copies the wasm artifact into the shared output directory.

By default the build is optimized (stellar contract build --optimize);
pass --no-optimize for a faster development build. The output filename
encodes the choice: hvym_freenet_service.optimized.wasm vs
hvym_freenet_service.wasm.

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

		b := builder.New(cfg, toolchain.NewExecRunner())
		res, err := b.BuildService(cmd.Context(), !noOptimize)
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

	rootCmd.Flags().BoolVar(&noOptimize, "no-optimize", false, "Skip WASM optimization step")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(toolchain.ExitCode(err))
	}
}
