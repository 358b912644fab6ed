package cli

import (
	"context"
	"io"
	"time"

	"github.com/aretw0/easel/pkg/runner"
)

// RunOptions configures a headless run.
type RunOptions struct {
	Options
	Frames   int
	Duration time.Duration
	Output   string
}

// Run renders the configured scene headlessly until the frame budget or
// duration is spent, or the process is interrupted, then optionally writes
// the last frame as a PNG.
func Run(ctx context.Context, opts RunOptions, w io.Writer) error {
	s, err := newSession(opts.Options, false)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.startPublisher(ctx)

	r := runner.NewRunner(s.host,
		runner.WithLogger(s.logger),
		runner.WithFPS(s.cfg.FPS),
		runner.WithFrames(opts.Frames),
		runner.WithDuration(opts.Duration),
		runner.WithOutput(opts.Output),
		runner.WithSignals(true),
	)
	res, err := r.Run(ctx)
	if err != nil {
		return err
	}

	if !opts.Quiet {
		verb := "Rendered"
		if res.Interrupted {
			verb = "Interrupted after"
		}
		printSystemMessage(w, "%s %d frames of '%s' in %s (%d skipped).", verb, res.Frames, s.cfg.Scene, res.Elapsed.Round(time.Millisecond), res.Skipped)
		if res.Output != "" {
			printSystemMessage(w, "Last frame written to %s.", res.Output)
		}
	}
	return nil
}
