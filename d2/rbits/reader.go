// Package rbits reads the reversed-bit-order stream that item records and
// character attributes are packed in.
//
// Every incoming byte has its bit order reversed before it is appended to an
// accumulator, and every extracted field has its bit order reversed again
// before it is returned. The net effect is a least-significant-bit-first
// stream: bit k of the stream is bit k%8 of byte k/8, and the first bit of a
// field is its least significant bit.
package rbits

import (
	"io"
	"math/bits"

	"github.com/thanhnguyen2187/d2-savior/d2/derr"
	"github.com/thanhnguyen2187/d2-savior/ds"
)

const MaxWidth = 32

type Reader struct {
	source io.Reader
	// data holds the buffered bits in its lowest bitsRead bits.
	data     uint64
	bitsRead int
	// BitsTotal is the sum of all widths served so far.
	BitsTotal int
	one       [1]byte
}

func NewReader(source io.Reader) *Reader {
	return &Reader{
		source: source,
	}
}

func (r *Reader) readByte() (byte, error) {
	if byteReader, ok := r.source.(io.ByteReader); ok {
		return byteReader.ReadByte()
	}
	if _, err := io.ReadFull(r.source, r.one[:]); err != nil {
		return 0, err
	}
	return r.one[0], nil
}

// Read serves width bits, 0 <= width <= 32. A zero width is a no-op that
// returns 0 and leaves the reader untouched.
func (r *Reader) Read(width int) (uint32, error) {
	if width < 0 || width > MaxWidth {
		return 0, derr.Inputf("rbits.Reader.Read invalid width %d", width)
	}
	if width == 0 {
		return 0, nil
	}
	for r.bitsRead < width {
		b, err := r.readByte()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return 0, derr.Input(err, "rbits.Reader.Read error")
		}
		r.data = r.data<<8 | uint64(bits.Reverse8(b))
		r.bitsRead += 8
	}
	result := uint32(r.data>>(r.bitsRead-width)) & mask(width)
	r.bitsRead -= width
	r.data &= uint64(1)<<r.bitsRead - 1
	r.BitsTotal += width

	return reverse(result, width), nil
}

// ReadTerminatedString reads charWidth-bit character codes until a zero code.
// The terminator is consumed but not returned.
func (r *Reader) ReadTerminatedString(charWidth int) ([]byte, error) {
	if charWidth <= 0 || charWidth > 8 {
		return nil, derr.Inputf("rbits.Reader.ReadTerminatedString invalid char width %d", charWidth)
	}
	bs := make([]byte, 0, 16)
	for {
		charCode, err := r.Read(charWidth)
		if err != nil {
			return nil, err
		}
		if charCode == 0 {
			return bs, nil
		}
		bs = append(bs, byte(charCode))
	}
}

// Align discards the bits left before the next byte boundary.
func (r *Reader) Align() error {
	_, err := r.Read(BitsToAlign(r.BitsTotal))
	return err
}

// BitsToAlign returns how many bits are needed to go from total to the next
// multiple of 8; 0 when total is already aligned.
func BitsToAlign(total int) int {
	return ds.NearestDivisibleByM(total, 8) - total
}

func mask(width int) uint32 {
	if width >= 32 {
		return ^uint32(0)
	}
	return uint32(1)<<width - 1
}

func reverse(value uint32, width int) uint32 {
	if width == 0 {
		return value
	}
	return bits.Reverse32(value) >> (32 - width)
}
