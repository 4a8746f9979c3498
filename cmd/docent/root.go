package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/docent/internal/cli"
	"github.com/aretw0/docent/internal/config"
	"github.com/aretw0/docent/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "docent",
	Short: "Docent is a conversational feedback guide for exhibitions",
	Long: `Docent talks visitors through a short survey about the exhibits they saw,
asking the curated questions of each exhibit and logging the answers.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the config file")
	rootCmd.PersistentFlags().String("log-level", "", "Override the configured log level (debug, info, warn, error)")
}

// loadConfig resolves the config file and the logger for a command.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger) {
	explicit, _ := cmd.Flags().GetString("config")
	path, err := config.FindConfig(explicit)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}

	logger := logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)
	if path != "" {
		logger.Debug("Loaded config", "path", path)
	}
	return cfg, logger
}

// buildApp wires the application or exits.
func buildApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) *cli.App {
	app, err := cli.Build(ctx, cfg, logger)
	if err != nil {
		fmt.Printf("Error initializing docent: %v\n", err)
		os.Exit(1)
	}
	return app
}
