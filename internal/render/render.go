// Package render turns DOT documents into images with the Graphviz dot
// binary.
package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/vk/efgscan/internal/ctxlog"
)

// Format is a Graphviz output format.
type Format string

const (
	FormatNone Format = "none"
	FormatPDF  Format = "pdf"
	FormatPNG  Format = "png"
	FormatSVG  Format = "svg"
)

// DefaultBinary is looked up on PATH.
const DefaultBinary = "dot"

// ParseFormat validates a format name. The empty string means FormatNone.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatNone, FormatPDF, FormatPNG, FormatSVG:
		return f, nil
	case "":
		return FormatNone, nil
	default:
		return "", fmt.Errorf("unknown render format %q", s)
	}
}

// Renderer invokes the dot binary.
type Renderer struct {
	Binary string
	Format Format
}

// Enabled reports whether the renderer produces any output.
func (r Renderer) Enabled() bool {
	return r.Format != "" && r.Format != FormatNone
}

// Render pipes doc to the dot binary and writes the image to outPath.
func (r Renderer) Render(ctx context.Context, doc []byte, outPath string) error {
	if !r.Enabled() {
		return nil
	}
	bin := r.Binary
	if bin == "" {
		bin = DefaultBinary
	}
	logger := ctxlog.FromContext(ctx).With("renderer", bin, "format", r.Format)

	cmd := exec.CommandContext(ctx, bin, "-T"+string(r.Format), "-o", outPath)
	cmd.Stdin = bytes.NewReader(doc)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	logger.Debug("Rendering graph", "output", outPath)
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s -T%s failed: %w: %s", bin, r.Format, err, msg)
		}
		return fmt.Errorf("%s -T%s failed: %w", bin, r.Format, err)
	}
	logger.Info("Rendered graph", "output", outPath)
	return nil
}

// OutputPath derives the image path from the DOT path by swapping the
// extension: out/efg.dot becomes out/efg.pdf.
func OutputPath(dotPath string, f Format) string {
	ext := filepath.Ext(dotPath)
	return strings.TrimSuffix(dotPath, ext) + "." + string(f)
}
