// Package lexicon maps abstract widget kinds to the literal substrings that
// identify them in a UI definition, for each supported toolkit dialect.
//
// Matching is done against case-folded lines, so every token is stored in
// lower case. The order of Entries is significant: when a line contains the
// tokens of several kinds, the kinds are tried in that order.
package lexicon

import (
	"fmt"
	"strings"

	"github.com/vk/efgscan/internal/efg"
)

// Dialect selects a toolkit token table.
type Dialect string

const (
	Qt  Dialect = "qt"
	GTK Dialect = "gtk"
)

// Entry pairs a widget kind with its matching token.
type Entry struct {
	Kind  efg.Kind
	Token string
}

// Lexicon is the token table for one dialect. It is a plain value built once
// per run and passed to the pipeline.
type Lexicon struct {
	Dialect       Dialect
	WindowMarker  string
	CommentMarker string
	ConnectMarker string
	Entries       []Entry
}

// ScanOrder is the order in which widget kinds are checked on each line.
var ScanOrder = []efg.Kind{
	efg.KindButton,
	efg.KindRadioButton,
	efg.KindSpinButton,
	efg.KindEditLine,
	efg.KindListWidget,
	efg.KindComboBox,
	efg.KindSlider,
	efg.KindToolButton,
	efg.KindCheckBox,
}

var builtin = map[Dialect]Lexicon{
	Qt: {
		Dialect:       Qt,
		WindowMarker:  "<class>",
		CommentMarker: "//",
		ConnectMarker: "connect",
		Entries: []Entry{
			{efg.KindButton, "qpushbutton"},
			{efg.KindRadioButton, "qradiobutton"},
			{efg.KindSpinButton, "qspinbox"},
			{efg.KindEditLine, "qlineedit"},
			{efg.KindListWidget, "qlistwidget"},
			{efg.KindComboBox, "qcombobox"},
			{efg.KindSlider, "qslider"},
			{efg.KindToolButton, "qtoolbutton"},
			{efg.KindCheckBox, "qcheckbox"},
		},
	},
	GTK: {
		Dialect:       GTK,
		WindowMarker:  "gtk::window",
		CommentMarker: "//",
		ConnectMarker: "connect",
		Entries: []Entry{
			{efg.KindButton, "gtk::button"},
			{efg.KindRadioButton, "gtk::radiobutton"},
			{efg.KindSpinButton, "gtk::spinbutton"},
			{efg.KindEditLine, "gtk::lineedit"},
			{efg.KindListWidget, "gtk::listwidget"},
			{efg.KindComboBox, "gtk::combobox"},
			{efg.KindSlider, "gtk::slider"},
			{efg.KindToolButton, "gtk::toolbutton"},
			{efg.KindCheckBox, "gtk::checkbox"},
		},
	},
}

// Dialects lists the built-in dialects in a stable order.
func Dialects() []Dialect {
	return []Dialect{Qt, GTK}
}

// Builtin returns a fresh copy of the built-in table for d.
func Builtin(d Dialect) (*Lexicon, error) {
	lex, ok := builtin[Dialect(strings.ToLower(string(d)))]
	if !ok {
		return nil, fmt.Errorf("unknown toolkit dialect %q", d)
	}
	return lex.clone(), nil
}

// Token returns the matching token for kind k.
func (l *Lexicon) Token(k efg.Kind) (string, bool) {
	for _, e := range l.Entries {
		if e.Kind == k {
			return e.Token, true
		}
	}
	return "", false
}

// Validate checks that every marker is set and that the entries cover exactly
// the scannable kinds in ScanOrder.
func (l *Lexicon) Validate() error {
	if l.WindowMarker == "" {
		return fmt.Errorf("dialect %q: window marker is empty", l.Dialect)
	}
	if l.CommentMarker == "" {
		return fmt.Errorf("dialect %q: comment marker is empty", l.Dialect)
	}
	if l.ConnectMarker == "" {
		return fmt.Errorf("dialect %q: connect marker is empty", l.Dialect)
	}
	if len(l.Entries) != len(ScanOrder) {
		return fmt.Errorf("dialect %q: expected %d widget tokens, got %d", l.Dialect, len(ScanOrder), len(l.Entries))
	}
	for i, k := range ScanOrder {
		e := l.Entries[i]
		if e.Kind != k {
			return fmt.Errorf("dialect %q: entry %d is %s, want %s", l.Dialect, i, e.Kind, k)
		}
		if e.Token == "" {
			return fmt.Errorf("dialect %q: token for %s is empty", l.Dialect, k)
		}
	}
	return nil
}

func (l Lexicon) clone() *Lexicon {
	l.Entries = append([]Entry(nil), l.Entries...)
	return &l
}
