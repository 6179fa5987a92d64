// Package derr holds the two error classes every decoder in d2 reports.
//
// Format errors mean the file itself is malformed: a bad magic number, an
// unknown attribute id, an out-of-range enum value. Input errors mean the
// API was misused or the stream ended early. Both survive any number of
// errors.Wrap calls, so callers check them with errors.Is.
package derr

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrFormat = errors.New("malformed data")
	ErrInput  = errors.New("invalid input")
)

type classified struct {
	class error
	msg   string
}

func (r classified) Error() string {
	return fmt.Sprintf("%s: %s", r.msg, r.class)
}

func (r classified) Unwrap() error {
	return r.class
}

// Formatf creates a format error carrying the offending value in its message.
func Formatf(format string, args ...any) error {
	return errors.WithStack(classified{class: ErrFormat, msg: fmt.Sprintf(format, args...)})
}

// Inputf creates an input error.
func Inputf(format string, args ...any) error {
	return errors.WithStack(classified{class: ErrInput, msg: fmt.Sprintf(format, args...)})
}

// Input classifies an underlying I/O error as an input error, keeping its text.
func Input(err error, message string) error {
	if err == nil {
		return nil
	}
	return Inputf("%s: %v", message, err)
}

func IsFormat(err error) bool {
	return errors.Is(err, ErrFormat)
}

func IsInput(err error) bool {
	return errors.Is(err, ErrInput)
}
