package extract

import "strings"

// attributeName returns the value of the first space-delimited token holding
// "name=", taking the text between the first and second '='. Returns "" when
// no such token exists.
func attributeName(line string) string {
	for _, word := range strings.Split(line, " ") {
		if !strings.Contains(word, "name=") {
			continue
		}
		parts := strings.Split(word, "=")
		if len(parts) < 2 {
			return ""
		}
		return parts[1]
	}
	return ""
}

var (
	windowNameCleaner = strings.NewReplacer(">", "", `"`, "")
	widgetNameCleaner = strings.NewReplacer(">", "", `"`, "", "/", "", " ", "")
)

// windowName extracts a window name, stripping '>' and '"'.
func windowName(line string) string {
	return windowNameCleaner.Replace(attributeName(line))
}

// widgetName extracts a widget variable name, additionally stripping '/' and
// spaces.
func widgetName(line string) string {
	return widgetNameCleaner.Replace(attributeName(line))
}
