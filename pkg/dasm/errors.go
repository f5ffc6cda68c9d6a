package dasm

import "errors"

var (
	// The leading byte(s) match no known encoding pattern
	ErrUnrecognizedOpcode error = errors.New("unrecognized opcode")
	// The encoding is recognized but no decoder is wired up for it
	ErrUnhandledFormat error = errors.New("unhandled instruction format")
	// Fewer bytes remain in the stream than the matched encoding requires
	ErrTruncated error = errors.New("truncated instruction stream")
)
