package main

import (
	"context"
	"fmt"

	"cafes/internal/seed"
	"cafes/internal/storage"

	"github.com/spf13/cobra"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import cafes from a YAML file",
	Long: `Import cafes from a YAML file. Cafes whose name already exists are skipped,
so the command can be run repeatedly.

Examples:
  cafes seed --file data/cafes.yaml`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "data/cafes.yaml", "Path to the YAML seed file")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cafes, err := seed.LoadFile(seedFile)
	if err != nil {
		return err
	}

	cfg, log, err := loadRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, err := storage.Open(cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		return err
	}

	result, err := seed.Apply(ctx, db.GetCafeRepository(), cafes, log)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %d cafes, skipped %d existing\n", result.Created, result.Skipped)
	return nil
}
