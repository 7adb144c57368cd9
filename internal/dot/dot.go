// Package dot serializes an event-flow model to Graphviz DOT text.
//
// The document is a "strict digraph" so renderers collapse literally repeated
// edges; the serializer itself emits every recorded edge and every widget,
// including names repeated across windows.
package dot

import (
	"io"
	"strings"

	"github.com/vk/efgscan/internal/efg"
)

const graphName = "G"

// Write emits the DOT document for m: the header, one node line per widget in
// window-then-widget order, one edge line per recorded edge in the same order,
// and the closing brace without a trailing newline.
func Write(w io.Writer, m *efg.Model) error {
	ew := &errWriter{w: w}
	ew.write("strict digraph " + graphName + " {\n")

	m.Each(func(_ *efg.Window, _ int, widget *efg.Widget) {
		ew.write("\t" + widget.Name + ";\n")
	})
	m.Each(func(win *efg.Window, _ int, widget *efg.Widget) {
		for _, to := range widget.Edges {
			ew.write("\t" + widget.Name + " -> " + win.Widgets[to].Name + ";\n")
		}
	})

	ew.write("}")
	return ew.err
}

// Render returns the DOT document as a string.
func Render(m *efg.Model) string {
	var b strings.Builder
	_ = Write(&b, m)
	return b.String()
}

// errWriter keeps the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) write(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}
