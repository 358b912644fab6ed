package main

import (
	"os"

	"github.com/aretw0/easel/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration",
	Long:  `Loads the configuration file, decodes the overlay options and checks the scene name.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Validate(commonOptions(cmd), os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
