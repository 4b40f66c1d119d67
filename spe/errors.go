package spe

import "errors"

// Common errors
var (
	ErrNotFound          = errors.New("file not found")
	ErrClosed            = errors.New("file is closed")
	ErrNoFrames          = errors.New("file declares no frames")
	ErrTruncated         = errors.New("file is truncated")
	ErrUnknownDatatype   = errors.New("unknown pixel datatype")
	ErrInvalidDimensions = errors.New("invalid frame dimensions")
	ErrOutOfRange        = errors.New("pixel index out of range")
)
