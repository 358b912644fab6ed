package cli

import (
	"context"
	"io"

	debughttp "github.com/aretw0/easel/pkg/adapters/http"
)

// Serve runs the frame loop with the debug HTTP server until ctx is done.
// An empty addr uses the configured one.
func Serve(ctx context.Context, opts Options, addr string, w io.Writer) error {
	s, err := newSession(opts, true)
	if err != nil {
		return err
	}
	defer s.Close()

	if addr == "" {
		addr = s.cfg.Server.Addr
	}

	serverOpts := []debughttp.Option{debughttp.WithLogger(s.logger)}
	if s.registry != nil {
		serverOpts = append(serverOpts, debughttp.WithMetrics(s.registry))
	}
	handler, err := debughttp.NewHandler(s.host, serverOpts...)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.startPublisher(ctx)
	go s.host.Run(ctx)

	if !opts.Quiet {
		printSystemMessage(w, "Serving '%s' on %s (%s).", s.cfg.Scene, addr, debugHint(s.host))
	}
	return handleExecutionError(debughttp.Serve(ctx, addr, handler, s.logger))
}
