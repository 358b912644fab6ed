package main

import (
	"os"

	"github.com/aretw0/easel/internal/cli"
	"github.com/aretw0/easel/internal/presentation/tui"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Render a scene headlessly",
	Long: `Runs the frame loop on an offscreen canvas until the frame budget or
duration is spent, or until interrupted, then optionally writes the last
frame as a PNG.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := commonOptions(cmd)
		frames, _ := cmd.Flags().GetInt("frames")
		duration, _ := cmd.Flags().GetDuration("duration")
		output, _ := cmd.Flags().GetString("output")

		if !opts.Quiet && tui.IsTerminal(os.Stdout) {
			tui.PrintBanner(os.Stdout)
		}
		return cli.Run(cmd.Context(), cli.RunOptions{
			Options:  opts,
			Frames:   frames,
			Duration: duration,
			Output:   output,
		}, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntP("frames", "n", 0, "Stop after this many frames (0 = until interrupted)")
	runCmd.Flags().Duration("duration", 0, "Stop after this much time")
	runCmd.Flags().StringP("output", "o", "", "Write the last frame to this PNG file")
}
