package extract

import (
	"context"
	"strings"

	"github.com/vk/efgscan/internal/ctxlog"
	"github.com/vk/efgscan/internal/efg"
	"github.com/vk/efgscan/internal/lexicon"
	"github.com/vk/efgscan/internal/source"
)

// Windows scans the UI definition and appends one window to m for every line
// containing the lexicon's window marker. Windows with an empty name are kept.
// On an I/O error the windows found so far stay in m and the error is
// returned.
func Windows(ctx context.Context, ui source.Source, lex *lexicon.Lexicon, m *efg.Model) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Window scan started.", "path", ui.Name(), "marker", lex.WindowMarker)

	found := 0
	err := source.Scan(ui, lex.CommentMarker, func(lineNo int, line string) bool {
		if !strings.Contains(line, lex.WindowMarker) {
			return true
		}
		win := efg.NewWindow(windowName(line), lineNo)
		m.AddWindow(win)
		found++
		logger.Debug("Window declared.", "window", win.Name, "line", lineNo)
		return true
	})

	logger.Debug("Window scan finished.", "windows", found)
	return err
}

// SingleWindow appends the one unnamed window used when no window scan is
// performed.
func SingleWindow(m *efg.Model) *efg.Window {
	win := efg.NewWindow("", 0)
	m.AddWindow(win)
	return win
}
