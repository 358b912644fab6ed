package main

import (
	"context"
	"os"

	"github.com/aretw0/easel/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the frame loop with the debug HTTP server",
	Long: `Runs the frame loop and exposes its status, debug controls, OpenAPI
document and Prometheus metrics over HTTP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		return cli.Serve(ctx, commonOptions(cmd), addr, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Address to listen on (defaults to server.addr)")
}
