// Package cli implements the interactive BookGenie terminal client.
//
// It wires the session manager, the resource collections, the semantic
// search panel and the tab router into a read-eval-print loop. Each REPL
// command maps to a method on App; the loop itself only parses input and
// dispatches.
//
// Typical session:
//
//	bg (dashboard)> login
//	bg (Alice dashboard)> tab books
//	bg (Alice books)> list
//	bg (Alice books)> show 12
//	bg (Alice books)> exit
package cli
