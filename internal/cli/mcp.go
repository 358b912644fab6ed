package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/easel/pkg/adapters/mcp"
)

// MCP runs the frame loop and exposes its debug controls as MCP tools.
// Transport is "stdio" or "sse".
func MCP(ctx context.Context, opts Options, transport string, port int) error {
	// stdout carries JSON-RPC on stdio
	opts.Quiet = opts.Quiet || transport == "stdio"
	s, err := newSession(opts, false)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.startPublisher(ctx)
	go s.host.Run(ctx)

	srv := mcp.NewServer(s.host, s.logger)
	switch transport {
	case "stdio":
		log.SetOutput(os.Stderr)
		s.logger.Info("Starting easel MCP server (stdio)")
		return srv.ServeStdio()
	case "sse":
		return handleExecutionError(srv.ServeSSE(ctx, port))
	default:
		return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
	}
}
