package render

import (
	"os"

	"github.com/cockroachdb/errors"
)

// Renderer writes a report's charts into a directory and returns the paths
// it created.
type Renderer interface {
	Render(outDir, report string, charts []Chart) ([]string, error)
}

// Formats lists the accepted output formats
var Formats = []string{"html", "png", "svg", "pdf"}

// New returns the renderer for an output format
func New(format string) (Renderer, error) {
	switch format {
	case "html":
		return HTMLRenderer{}, nil
	case "png", "svg", "pdf":
		return ImageRenderer{Format: format}, nil
	default:
		return nil, errors.Newf("unknown output format %q", format)
	}
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create output directory %s", dir)
	}
	return nil
}
