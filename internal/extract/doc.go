// Package extract discovers windows and widgets in a UI definition by
// line-level pattern matching against the tokens of a lexicon.
//
// There is no window-boundary detection at the widget level: every window
// re-scans the whole UI text, so a file declaring two windows gives both of
// them the same widgets.
package extract
