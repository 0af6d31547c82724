// Package repl drives the byte parser from a line-oriented input stream.
//
// Each line is trimmed, parsed with decbyte.Parse and rendered as one result.
// The loop ends cleanly at EOF; any other read failure is returned as
// ErrReadInput and is fatal to the caller.
package repl
