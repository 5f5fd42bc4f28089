package main

import (
	"fmt"

	"cafes/internal/auth"

	"github.com/spf13/cobra"
)

var hashKeyCost int

var hashKeyCmd = &cobra.Command{
	Use:   "hash-key <key>",
	Short: "Print a bcrypt hash for API_KEY_HASH",
	Long: `Print a bcrypt hash of the closure report API key. Put the output into
API_KEY_HASH so the plain key never has to be stored in the environment.

Examples:
  cafes hash-key TopSecretAPIKey`,
	Args: cobra.ExactArgs(1),
	RunE: runHashKey,
}

func init() {
	hashKeyCmd.Flags().IntVar(&hashKeyCost, "cost", auth.DefaultCost, "bcrypt cost")
}

func runHashKey(cmd *cobra.Command, args []string) error {
	hash, err := auth.HashKey(args[0], hashKeyCost)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}
