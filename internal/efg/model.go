package efg

const (
	// FillerName is the literal name given to every padding widget.
	FillerName = "completar"

	invalidPrefix = "r_invalid_"
	validPrefix   = "r_valid_"
)

// Widget is one interactive element of a window. Edges are indices into the
// owning window's widget slice.
type Widget struct {
	Name     string
	Kind     Kind
	NodeKind NodeKind
	Handler  string
	Edges    []int
}

// Window is one dialog discovered in the UI definition. It exclusively owns
// its widgets; insertion order is discovery order.
type Window struct {
	Name    string
	Line    int
	Widgets []Widget
}

// NewWindow creates an empty window declared at the given 1-based line.
func NewWindow(name string, line int) *Window {
	return &Window{Name: name, Line: line}
}

// Has reports whether a widget with the given name already exists.
func (w *Window) Has(name string) bool {
	return w.Index(name) >= 0
}

// Index returns the position of the first widget with the given name, or -1.
func (w *Window) Index(name string) int {
	for i := range w.Widgets {
		if w.Widgets[i].Name == name {
			return i
		}
	}
	return -1
}

// Add inserts a widget unless one with the same name is already present. It
// returns the widget's index and whether it was inserted.
func (w *Window) Add(name string, kind Kind) (int, bool) {
	if w.Has(name) {
		return -1, false
	}
	return w.append(Widget{Name: name, Kind: kind}), true
}

// AddWithValidity inserts a widget together with its r_invalid_/r_valid_ pair
// and links each pair member to the origin in both directions. Nothing is
// inserted when the origin name already exists.
func (w *Window) AddWithValidity(name string, kind Kind) (int, bool) {
	if w.Has(name) {
		return -1, false
	}
	origin := w.append(Widget{Name: name, Kind: kind})
	invalid := w.append(Widget{Name: invalidPrefix + name, Kind: KindValidityInvalid, NodeKind: NodeValueResult})
	valid := w.append(Widget{Name: validPrefix + name, Kind: KindValidityValid, NodeKind: NodeValueResult})

	w.Link(origin, invalid)
	w.Link(origin, valid)
	w.Link(invalid, origin)
	w.Link(valid, origin)
	return origin, true
}

// AddFiller appends a padding widget. Fillers all share FillerName and skip
// the duplicate-name check.
func (w *Window) AddFiller() int {
	return w.append(Widget{Name: FillerName, Kind: KindFiller})
}

// Link records a directed edge between two widgets of this window. No
// deduplication is performed.
func (w *Window) Link(from, to int) {
	w.Widgets[from].Edges = append(w.Widgets[from].Edges, to)
}

// EdgeCount returns the number of edges recorded in the window.
func (w *Window) EdgeCount() int {
	n := 0
	for i := range w.Widgets {
		n += len(w.Widgets[i].Edges)
	}
	return n
}

func (w *Window) append(widget Widget) int {
	w.Widgets = append(w.Widgets, widget)
	return len(w.Widgets) - 1
}

// Model is the aggregate of every window found for one file pair.
type Model struct {
	Windows []*Window
}

// AddWindow appends a window; windows are never merged.
func (m *Model) AddWindow(w *Window) {
	m.Windows = append(m.Windows, w)
}

// WidgetCount returns the total number of widgets across all windows.
func (m *Model) WidgetCount() int {
	n := 0
	for _, w := range m.Windows {
		n += len(w.Widgets)
	}
	return n
}

// EdgeCount returns the total number of edges across all windows.
func (m *Model) EdgeCount() int {
	n := 0
	for _, w := range m.Windows {
		n += w.EdgeCount()
	}
	return n
}

// Each calls fn for every widget in window-then-widget order.
func (m *Model) Each(fn func(win *Window, idx int, widget *Widget)) {
	for _, win := range m.Windows {
		for i := range win.Widgets {
			fn(win, i, &win.Widgets[i])
		}
	}
}
