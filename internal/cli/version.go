package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/aretw0/easel"
	"github.com/aretw0/easel/internal/presentation/tui"
	debughttp "github.com/aretw0/easel/pkg/adapters/http"
	"github.com/aretw0/easel/pkg/scene"
)

// Version prints the engine version. short prints only the number; banner
// adds the coloured logo on top of the full report.
func Version(w io.Writer, short, banner bool) error {
	version := strings.TrimSpace(easel.Version)
	if short {
		_, err := fmt.Fprintln(w, version)
		return err
	}

	apiVersion := "unknown"
	if doc, err := debughttp.LoadSpec(); err == nil && doc.Info != nil {
		apiVersion = doc.Info.Version
	}

	if banner {
		tui.PrintBanner(w)
	}
	names := make([]string, 0, len(scene.All()))
	for _, s := range scene.All() {
		names = append(names, s.Name)
	}
	fmt.Fprintf(w, "easel %s (%s %s/%s)\n", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(w, "  debug api  %s\n", apiVersion)
	fmt.Fprintf(w, "  mcp server easel-mcp %s\n", version)
	_, err := fmt.Fprintf(w, "  scenes     %s\n", strings.Join(names, ", "))
	return err
}
