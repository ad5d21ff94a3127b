package core

import (
	"errors"
)

var (
	ErrOutOfMemory     = errors.New("out of memory")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrInvalidObject   = errors.New("invalid object")
	ErrObjectDestroyed = errors.New("object already destroyed")
)
