// Package efg holds the in-memory event-flow graph: the windows discovered in a
// UI definition, the widgets each window owns, and the directed edges between
// widgets of the same window.
//
// Storage is arena-style. A Window owns its widgets in a slice and every edge is
// an index into that slice, so edges can never point outside their window and a
// widget never outlives the window that owns it.
//
// The package also contains the graph construction step (Connect), which runs
// once all widgets have their final node kind.
package efg
