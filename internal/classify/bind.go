package classify

import (
	"strings"

	"github.com/vk/efgscan/internal/lexicon"
	"github.com/vk/efgscan/internal/source"
)

// slotField is the 0-based comma-separated field of a connect line that names
// the slot.
const slotField = 3

var handlerCleaner = strings.NewReplacer("slot", "", "(", "", ")", "", ";", "", " ", "")

// Bind returns the handler of the first connect line mentioning widget. Lines
// with too few fields are skipped. An empty result means no handler.
func Bind(src source.Source, lex *lexicon.Lexicon, widget string) (string, error) {
	handler := ""
	err := source.Scan(src, lex.CommentMarker, func(_ int, line string) bool {
		if !strings.Contains(line, lex.ConnectMarker) || !strings.Contains(line, widget) {
			return true
		}
		fields := strings.Split(line, ",")
		if len(fields) <= slotField {
			return true
		}
		handler = handlerCleaner.Replace(fields[slotField])
		return false
	})
	return handler, err
}
