package classify

import (
	"context"

	"github.com/vk/efgscan/internal/ctxlog"
	"github.com/vk/efgscan/internal/efg"
	"github.com/vk/efgscan/internal/lexicon"
	"github.com/vk/efgscan/internal/source"
)

// Stats summarises one classification pass.
type Stats struct {
	Bound         int // widgets with a handler
	NameTerminals int // terminal by name
	Terminals     int // terminal by reject() in the handler body
	FailedScans   int
}

// Classify binds handlers and assigns node kinds to every widget of m, then
// runs the medium sweep. Widgets whose node kind is fixed (value-result) and
// fillers are not scanned. I/O failures do not stop the pass: the widget keeps
// an undecided node kind, and the first failure is returned alongside the
// stats.
func Classify(ctx context.Context, m *efg.Model, src source.Source, lex *lexicon.Lexicon) (Stats, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Classification started.", "path", src.Name(), "widgets", m.WidgetCount())

	var (
		stats    Stats
		firstErr error
	)
	fail := func(win *efg.Window, w *efg.Widget, step string, err error) {
		stats.FailedScans++
		if firstErr == nil {
			firstErr = err
			logger.Error("Implementation source scan failed.", "stage", "classify", "step", step, "path", src.Name(), "error", err)
		}
		logger.Debug("Widget left unclassified.", "window", win.Name, "widget", w.Name, "step", step)
	}

	m.Each(func(win *efg.Window, _ int, w *efg.Widget) {
		if w.NodeKind == efg.NodeValueResult || w.Kind == efg.KindFiller {
			return
		}

		handler, err := Bind(src, lex, w.Name)
		if err != nil {
			fail(win, w, "bind", err)
		}
		w.Handler = handler
		if handler != "" {
			stats.Bound++
		}

		if terminalName(w.Name) {
			w.NodeKind = efg.NodeTerminal
			stats.NameTerminals++
			return
		}
		if handler == "" {
			return
		}

		rejects, err := callsReject(src, lex.CommentMarker, handler)
		if err != nil {
			fail(win, w, "terminal", err)
			return
		}
		if rejects {
			w.NodeKind = efg.NodeTerminal
			stats.Terminals++
			logger.Debug("Handler rejects the dialog.", "window", win.Name, "widget", w.Name, "handler", handler)
		}
	})

	Sweep(m)
	logger.Debug("Classification finished.", "bound", stats.Bound, "name_terminals", stats.NameTerminals, "terminals", stats.Terminals, "failed_scans", stats.FailedScans)
	return stats, firstErr
}

// Sweep marks every widget still undecided as medium. Value-result widgets
// are left alone.
func Sweep(m *efg.Model) {
	m.Each(func(_ *efg.Window, _ int, w *efg.Widget) {
		if w.NodeKind == efg.NodeUnset && !w.Kind.IsValidity() {
			w.NodeKind = efg.NodeMedium
		}
	})
}
