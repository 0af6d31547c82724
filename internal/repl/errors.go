package repl

import "errors"

var (
	ErrReadInput     = errors.New("repl: read input")
	ErrWriteOutput   = errors.New("repl: write output")
	ErrUnknownFormat = errors.New("repl: unknown format")
)
