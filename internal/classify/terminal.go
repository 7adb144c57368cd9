package classify

import (
	"strings"

	"github.com/vk/efgscan/internal/source"
)

const (
	functionMarker = "void"
	rejectMarker   = "reject()"
)

var terminalNames = []string{"apply", "ok", "cancel", "close"}

// terminalName reports whether a widget name alone marks it terminal.
func terminalName(name string) bool {
	for _, s := range terminalNames {
		if strings.Contains(name, s) {
			return true
		}
	}
	return false
}

// callsReject follows the body of handler and reports whether a reject()
// call appears while the brace balance is positive. The scan stops when the
// balance returns to zero or at end of input.
func callsReject(src source.Source, commentMarker, handler string) (bool, error) {
	var (
		inBody bool
		opened int
		closed int
		found  bool
	)
	err := source.Scan(src, commentMarker, func(_ int, line string) bool {
		if strings.Contains(line, functionMarker) && strings.Contains(line, handler) {
			if strings.Contains(line, "{") {
				opened++
			}
			inBody = true
			return true
		}
		if !inBody {
			return true
		}
		if strings.Contains(line, "{") {
			opened++
		}
		if strings.Contains(line, "}") {
			closed++
		}
		if opened == closed {
			return false
		}
		if opened > closed && strings.Contains(line, rejectMarker) {
			found = true
			return false
		}
		return true
	})
	return found, err
}
