/*
Package runner drives an engine headlessly from the command line.

It owns the frame source, stops after a frame budget or duration, reacts to
SIGINT and SIGTERM, and can export the last frame as a PNG when the surface
supports it.

# Usage

	r := runner.NewRunner(engine,
		runner.WithFrames(120),
		runner.WithOutput("frame.png"),
		runner.WithSignals(true),
	)

	res, err := r.Run(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res.Frames, "frames")
*/
package runner
