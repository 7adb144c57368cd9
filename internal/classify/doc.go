// Package classify binds each widget to the handler its signal is connected
// to and decides whether activating the widget ends the dialog.
//
// A widget is terminal when its name mentions apply, ok, cancel or close, or
// when its handler body calls reject(). Handler bodies are found by a
// "void"+handler line and followed with a per-line brace balance: a line
// counts once for '{' and once for '}' however many of each it holds.
// Everything left undecided becomes medium in a final sweep; value-result
// widgets keep the node kind they were created with.
package classify
