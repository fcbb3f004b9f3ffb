package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:          "dungeonctl",
		Short:        "Operator tool for the dungeon progression server",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to the YAML config file")

	root.AddCommand(
		newMigrateCmd(&configPath),
		newCatalogCmd(&configPath),
		newResetCmd(&configPath),
		newTokenCmd(&configPath),
	)
	return root
}
