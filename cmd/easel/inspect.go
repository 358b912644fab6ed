package main

import (
	"os"

	"github.com/aretw0/easel/internal/cli"
	"github.com/aretw0/easel/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Summarise the effective configuration and available scenes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Inspect(commonOptions(cmd), os.Stdout, tui.IsTerminal(os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
