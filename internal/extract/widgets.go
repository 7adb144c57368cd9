package extract

import (
	"context"
	"strings"

	"github.com/vk/efgscan/internal/ctxlog"
	"github.com/vk/efgscan/internal/efg"
	"github.com/vk/efgscan/internal/lexicon"
	"github.com/vk/efgscan/internal/source"
)

// fillerRatio is the share of discovered widgets added again as fillers.
const fillerRatio = 0.1

// Widgets scans the whole UI definition for widgets of win. Every kind of the
// lexicon is tried in order on each line; a widget whose name already exists
// in the window is dropped. Padding is applied even when the scan fails part
// way, over whatever was discovered.
func Widgets(ctx context.Context, ui source.Source, lex *lexicon.Lexicon, win *efg.Window) error {
	logger := ctxlog.FromContext(ctx).With("window", win.Name)
	logger.Debug("Widget scan started.", "path", ui.Name())

	err := source.Scan(ui, lex.CommentMarker, func(lineNo int, line string) bool {
		scanLine(ctx, lex, win, lineNo, line)
		return true
	})

	discovered := len(win.Widgets)
	fillers := Pad(win)
	logger.Debug("Widget scan finished.", "discovered", discovered, "fillers", fillers)
	return err
}

// scanLine applies every lexicon entry to one line. An entry whose token
// matches but whose name is empty abandons the rest of the line.
func scanLine(ctx context.Context, lex *lexicon.Lexicon, win *efg.Window, lineNo int, line string) {
	for _, e := range lex.Entries {
		if !strings.Contains(line, e.Token) {
			continue
		}
		name := widgetName(line)
		if name == "" {
			ctxlog.FromContext(ctx).Debug("Widget line without a name, skipping line.", "line", lineNo, "kind", e.Kind)
			return
		}

		var added bool
		if e.Kind.HasValidityPair() {
			_, added = win.AddWithValidity(name, e.Kind)
		} else {
			_, added = win.Add(name, e.Kind)
		}
		if !added {
			ctxlog.FromContext(ctx).Debug("Duplicate widget ignored.", "widget", name, "kind", e.Kind, "line", lineNo)
		}
	}
}

// Pad appends filler widgets until their count reaches a tenth of the widgets
// present beforehand, rounded up. An empty window gets none. It returns the
// number of fillers added.
func Pad(win *efg.Window) int {
	n := float64(len(win.Widgets))
	added := 0
	for float64(added) < fillerRatio*n {
		win.AddFiller()
		added++
	}
	return added
}
