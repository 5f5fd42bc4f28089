package main

import (
	"fmt"

	"cafes/internal/config"
	"cafes/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "cafes",
	Short: "Cafe & Wifi catalog web service",
	Long: `Cafe & Wifi serves a catalog of laptop friendly cafes: HTML pages for
browsing and suggesting cafes plus a small JSON API for random picks,
price updates and closure reports.

Running without a subcommand starts the server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, hashKeyCmd)
}

// loadRuntime загружает конфигурацию и создает логгер
func loadRuntime() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Output:  cfg.LogOutput,
		Path:    cfg.LogPath,
		DataDir: cfg.AppDataDir,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return cfg, log, nil
}
