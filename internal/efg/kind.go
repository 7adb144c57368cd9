package efg

import "fmt"

// Kind is the widget kind discovered in the UI definition, or one of the
// synthetic kinds created by the extractor.
type Kind int

const (
	KindButton Kind = iota
	KindRadioButton
	KindSpinButton
	KindEditLine
	KindListWidget
	KindComboBox
	KindSlider
	KindToolButton
	KindCheckBox
	KindValidityInvalid
	KindValidityValid
	KindFiller
)

var kindNames = map[Kind]string{
	KindButton:          "button",
	KindRadioButton:     "radiobutton",
	KindSpinButton:      "spinbutton",
	KindEditLine:        "editline",
	KindListWidget:      "listwidget",
	KindComboBox:        "combobox",
	KindSlider:          "slider",
	KindToolButton:      "toolbutton",
	KindCheckBox:        "checkbox",
	KindValidityInvalid: "validity-invalid",
	KindValidityValid:   "validity-valid",
	KindFiller:          "filler",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a kind name as produced by String back to its Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown widget kind %q", s)
}

// IsValidity reports whether k is one of the two value-result kinds.
func (k Kind) IsValidity() bool {
	return k == KindValidityInvalid || k == KindValidityValid
}

// HasValidityPair reports whether discovering a widget of kind k also creates
// the r_invalid_/r_valid_ pair.
func (k Kind) HasValidityPair() bool {
	return k == KindEditLine || k == KindComboBox
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// NodeKind is the role a widget plays in the event-flow graph.
type NodeKind int

const (
	// NodeUnset is the zero value: the classifier has not decided yet.
	NodeUnset NodeKind = iota
	// NodeTerminal widgets close, cancel or apply the dialog.
	NodeTerminal
	// NodeMedium widgets are connected to every non value-result widget of
	// their window.
	NodeMedium
	// NodeValueResult is fixed at creation for validity-pair widgets.
	NodeValueResult
)

func (n NodeKind) String() string {
	switch n {
	case NodeUnset:
		return "unset"
	case NodeTerminal:
		return "terminal"
	case NodeMedium:
		return "medium"
	case NodeValueResult:
		return "value-result"
	default:
		return fmt.Sprintf("nodekind(%d)", int(n))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (n NodeKind) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}
