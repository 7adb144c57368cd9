// Package pipeline runs the analysis of one UI definition and implementation
// source pair: window discovery, widget discovery, classification, graph
// construction and DOT serialization, strictly in that order.
//
// A Pipeline is an explicitly constructed value holding the lexicon and the
// run options; it carries no global state and can be shared by goroutines
// analysing different file pairs. A single Run is sequential.
package pipeline
