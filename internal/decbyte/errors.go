package decbyte

import "errors"

// ErrInvalidToken covers empty, too long, non-digit and out-of-range tokens.
var ErrInvalidToken = errors.New("decbyte: invalid token")
