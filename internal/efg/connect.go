package efg

import (
	"context"

	"github.com/vk/efgscan/internal/ctxlog"
)

// Connect adds the dense event-flow edges: every medium widget gets an edge to
// every widget of its window whose node kind is not value-result, itself
// included. It must run after every widget has its final node kind. Edges are
// appended to whatever the extractor already recorded.
func Connect(ctx context.Context, m *Model) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Connecting widgets.", "windows", len(m.Windows))

	for _, win := range m.Windows {
		if len(win.Widgets) == 0 {
			continue
		}
		before := win.EdgeCount()
		for i := range win.Widgets {
			if win.Widgets[i].NodeKind != NodeMedium {
				continue
			}
			for j := range win.Widgets {
				if win.Widgets[j].NodeKind == NodeValueResult {
					continue
				}
				win.Link(i, j)
			}
		}
		logger.Debug("Window connected.", "window", win.Name, "widgets", len(win.Widgets), "edges_added", win.EdgeCount()-before)
	}
}
