package lbytes

import (
	"bytes"
)

type (
	// Reader reads the byte-aligned parts of save and stash files. It is an
	// io.Reader, so a bit reader can be stacked on it for the packed parts.
	Reader struct {
		bytes.Reader
	}
	Instruction struct {
		Key          string
		ReadFunction ReadFunction
	}
	ReadFunction func() (any, error)
)

// KeySkip marks an instruction whose value is read and dropped.
const KeySkip = "-"
