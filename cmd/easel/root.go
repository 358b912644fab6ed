package main

import (
	"fmt"
	"os"

	"github.com/aretw0/easel/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "easel",
	Short: "Easel is a frame-driven rendering engine",
	Long: `Easel runs a per-frame loop that clones your data, transforms it through
conditional pipelines, draws background, main and foreground layers, and
overlays a grid and an environment readout. Debug controls let you break,
step and resize the loop from HTTP or MCP.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "", "Configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().StringP("scene", "s", "", "Scene to render (overrides the configuration)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress informational output")
}

// commonOptions reads the persistent flags.
func commonOptions(cmd *cobra.Command) cli.Options {
	configPath, _ := cmd.Flags().GetString("config")
	sceneName, _ := cmd.Flags().GetString("scene")
	debug, _ := cmd.Flags().GetBool("debug")
	quiet, _ := cmd.Flags().GetBool("quiet")
	return cli.Options{
		ConfigPath: configPath,
		Scene:      sceneName,
		Debug:      debug,
		Quiet:      quiet,
	}
}
