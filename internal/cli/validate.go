package cli

import (
	"io"

	"github.com/aretw0/easel/pkg/scene"
)

// Validate loads the configuration, checks every field and the scene name,
// and reports the result on w.
func Validate(opts Options, w io.Writer) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}
	if _, err := scene.Lookup(cfg.Scene); err != nil {
		return err
	}
	if !opts.Quiet {
		source := opts.ConfigPath
		if source == "" {
			source = "built-in defaults"
		}
		printSystemMessage(w, "Configuration from %s is valid.", source)
	}
	return nil
}
