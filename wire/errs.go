package wire

import "errors"

var (
	ErrBadMagic   = errors.New("bad magic")
	ErrBadVersion = errors.New("unsupported version")
	ErrTruncated  = errors.New("truncated input")
	ErrBadTag     = errors.New("unknown tag")
	ErrTooDeep    = errors.New("nesting too deep")
	ErrCorrupt    = errors.New("corrupt compressed payload")
)
